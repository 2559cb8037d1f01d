package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"lick-scroll-monetization/pkg/apperror"
	"lick-scroll-monetization/pkg/logger"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/repo/persistent"
)

// Uploader is implemented by s3.Client.
type Uploader interface {
	Upload(key string, body io.ReadSeeker, contentType string) (string, error)
}

type StatementUseCase interface {
	Export(ctx context.Context, creatorID string) (*entity.Statement, error)
}

type statementUseCase struct {
	uow      persistent.UnitOfWork
	uploader Uploader
	logger   *logger.Logger
	now      func() time.Time
}

func NewStatementUseCase(uow persistent.UnitOfWork, uploader Uploader, logger *logger.Logger) StatementUseCase {
	return &statementUseCase{
		uow:      uow,
		uploader: uploader,
		logger:   logger,
		now:      utcNow,
	}
}

func (uc *statementUseCase) Export(ctx context.Context, creatorID string) (*entity.Statement, error) {
	if uc.uploader == nil {
		return nil, apperror.ErrStatementsDisabled
	}

	var (
		entries  []*entity.LedgerEntry
		earnings *entity.Earnings
	)
	err := uc.uow.Read(ctx, func(repos *persistent.Repositories) error {
		var err error
		entries, err = repos.Ledger.ListForAccount(ctx, creatorID, 0, 0)
		if err != nil {
			return fmt.Errorf("failed to list ledger entries: %w", err)
		}
		earnings, err = computeEarnings(ctx, repos, creatorID)
		return err
	})
	if err != nil {
		uc.logger.Error("Failed to read statement data for %s: %v", creatorID, err)
		return nil, err
	}

	body, err := renderStatement(entries, earnings)
	if err != nil {
		return nil, fmt.Errorf("failed to render statement: %w", err)
	}

	generatedAt := uc.now()
	key := fmt.Sprintf("statements/%s/%s.csv", creatorID, generatedAt.Format("20060102T150405Z"))
	url, err := uc.uploader.Upload(key, bytes.NewReader(body), "text/csv")
	if err != nil {
		uc.logger.Error("Failed to upload statement %s: %v", key, err)
		return nil, err
	}

	return &entity.Statement{
		CreatorID:   creatorID,
		Key:         key,
		URL:         url,
		Entries:     len(entries),
		GeneratedAt: generatedAt,
	}, nil
}

func renderStatement(entries []*entity.LedgerEntry, earnings *entity.Earnings) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{{"created_at", "entry_type", "amount", "transaction_id", "description"}}
	for _, e := range entries {
		transactionID := ""
		if e.TransactionID != nil {
			transactionID = *e.TransactionID
		}
		rows = append(rows, []string{
			e.CreatedAt.UTC().Format(time.RFC3339),
			string(e.EntryType),
			e.Amount.String(),
			transactionID,
			e.Description,
		})
	}
	rows = append(rows,
		[]string{},
		[]string{"total_earnings", earnings.TotalEarnings.String()},
		[]string{"paid_out", earnings.PaidOut.String()},
		[]string{"refunded", earnings.Refunded.String()},
		[]string{"adjustments", earnings.Adjustments.String()},
		[]string{"reserved", earnings.Reserved.String()},
		[]string{"pending_earnings", earnings.PendingEarnings.String()},
	)

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
