package usecase

import (
	"context"
	"fmt"
	"time"

	"lick-scroll-monetization/pkg/apperror"
	"lick-scroll-monetization/pkg/money"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/repo/persistent"
)

// fault passes domain errors through and wraps everything else.
func fault(err error, msg string) error {
	if _, ok := apperror.As(err); ok {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func isFault(err error) bool {
	_, ok := apperror.As(err)
	return !ok
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func strPtr(s string) *string {
	return &s
}

// appendEntry is the single write path into the ledger.
func appendEntry(ctx context.Context, repos *persistent.Repositories, entry *entity.LedgerEntry) error {
	if entry.AccountID == "" {
		return apperror.ErrMissingField.Withf("account_id is required")
	}
	if entry.Amount.IsZero() {
		return apperror.ErrZeroAmount
	}
	if !entry.EntryType.Valid() {
		return apperror.ErrInvalidInput.Withf("unknown entry type %q", entry.EntryType)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = utcNow()
	}
	if err := repos.Ledger.Append(ctx, entry); err != nil {
		return fault(err, "failed to append ledger entry")
	}
	return nil
}

// computeEarnings derives balances from the ledger and active payouts. Call
// it inside a snapshot or a write transaction.
func computeEarnings(ctx context.Context, repos *persistent.Repositories, creatorID string) (*entity.Earnings, error) {
	sums, err := repos.Ledger.SumByType(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ledger: %w", err)
	}
	reserved, err := repos.Payouts.ReservedForCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum reserved payouts: %w", err)
	}

	total := sums[entity.EntryTypeEarnings]
	paidOut := sums[entity.EntryTypePayout].Abs()
	refunded := sums[entity.EntryTypeRefund]
	adjustments := sums[entity.EntryTypeAdjustment]

	available := money.Sum(total, refunded, adjustments).Sub(paidOut).Sub(reserved)

	return &entity.Earnings{
		CreatorID:       creatorID,
		TotalEarnings:   total,
		PendingEarnings: available.Clamp(money.Zero, total),
		PaidOut:         paidOut,
		Reserved:        reserved,
		Refunded:        refunded.Abs(),
		Adjustments:     adjustments,
	}, nil
}
