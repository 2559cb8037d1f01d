package usecase

import (
	"context"
	"fmt"

	"lick-scroll-monetization/pkg/apperror"
	"lick-scroll-monetization/pkg/logger"
	"lick-scroll-monetization/pkg/money"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/repo/persistent"
)

type LedgerUseCase interface {
	Append(ctx context.Context, accountID string, amount money.Cents, entryType entity.EntryType, transactionID *string, description string) (*entity.LedgerEntry, error)
	SumForAccount(ctx context.Context, accountID string, entryTypes ...entity.EntryType) (money.Cents, error)
	History(ctx context.Context, accountID string, limit, offset int) ([]*entity.LedgerEntry, error)
	// Adjust records an operator correction against a creator's balance.
	Adjust(ctx context.Context, operatorID, creatorID string, amount money.Cents, description string) (*entity.LedgerEntry, error)
}

type ledgerUseCase struct {
	uow    persistent.UnitOfWork
	logger *logger.Logger
}

func NewLedgerUseCase(uow persistent.UnitOfWork, logger *logger.Logger) LedgerUseCase {
	return &ledgerUseCase{
		uow:    uow,
		logger: logger,
	}
}

func (uc *ledgerUseCase) Append(ctx context.Context, accountID string, amount money.Cents, entryType entity.EntryType, transactionID *string, description string) (*entity.LedgerEntry, error) {
	entry := &entity.LedgerEntry{
		AccountID:     accountID,
		Amount:        amount,
		EntryType:     entryType,
		TransactionID: transactionID,
		Description:   description,
	}

	err := uc.uow.Do(ctx, func(repos *persistent.Repositories) error {
		return appendEntry(ctx, repos, entry)
	})
	if err != nil {
		if isFault(err) {
			uc.logger.Error("Failed to append ledger entry: %v", err)
		}
		return nil, err
	}
	return entry, nil
}

func (uc *ledgerUseCase) SumForAccount(ctx context.Context, accountID string, entryTypes ...entity.EntryType) (money.Cents, error) {
	var sum money.Cents
	err := uc.uow.Read(ctx, func(repos *persistent.Repositories) error {
		var err error
		sum, err = repos.Ledger.SumForAccount(ctx, accountID, entryTypes...)
		return err
	})
	if err != nil {
		uc.logger.Error("Failed to sum ledger for %s: %v", accountID, err)
		return 0, fmt.Errorf("failed to sum ledger: %w", err)
	}
	return sum, nil
}

func (uc *ledgerUseCase) History(ctx context.Context, accountID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	entries, err := uc.uow.Repositories().Ledger.ListForAccount(ctx, accountID, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to list ledger entries: %v", err)
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

func (uc *ledgerUseCase) Adjust(ctx context.Context, operatorID, creatorID string, amount money.Cents, description string) (*entity.LedgerEntry, error) {
	if description == "" {
		return nil, apperror.ErrMissingField.Withf("description is required for adjustments")
	}

	entry, err := uc.Append(ctx, creatorID, amount, entity.EntryTypeAdjustment, nil,
		fmt.Sprintf("%s (by %s)", description, operatorID))
	if err != nil {
		return nil, err
	}

	uc.logger.WithFields(map[string]interface{}{
		"creator_id":   creatorID,
		"operator_id":  operatorID,
		"amount_cents": amount.Int64(),
	}).Info("Ledger adjustment recorded")
	return entry, nil
}
