package usecase

import (
	"context"

	"lick-scroll-monetization/pkg/logger"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/repo/persistent"
)

type EarningsUseCase interface {
	GetCreatorEarnings(ctx context.Context, creatorID string) (*entity.Earnings, error)
}

type earningsUseCase struct {
	uow    persistent.UnitOfWork
	logger *logger.Logger
}

func NewEarningsUseCase(uow persistent.UnitOfWork, logger *logger.Logger) EarningsUseCase {
	return &earningsUseCase{
		uow:    uow,
		logger: logger,
	}
}

// GetCreatorEarnings reads the ledger and reservations in one snapshot, so
// an approval committing concurrently is seen either fully or not at all.
func (uc *earningsUseCase) GetCreatorEarnings(ctx context.Context, creatorID string) (*entity.Earnings, error) {
	var earnings *entity.Earnings
	err := uc.uow.Read(ctx, func(repos *persistent.Repositories) error {
		var err error
		earnings, err = computeEarnings(ctx, repos, creatorID)
		return err
	})
	if err != nil {
		uc.logger.Error("Failed to compute earnings for %s: %v", creatorID, err)
		return nil, err
	}
	return earnings, nil
}
