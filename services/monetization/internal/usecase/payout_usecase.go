package usecase

import (
	"context"
	"fmt"
	"time"

	"lick-scroll-monetization/pkg/apperror"
	"lick-scroll-monetization/pkg/logger"
	"lick-scroll-monetization/pkg/money"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/repo/persistent"

	"github.com/go-playground/validator/v10"
)

type PayoutUseCase interface {
	RequestPayout(ctx context.Context, creatorID string, amount money.Cents, method string, details map[string]interface{}) (*entity.Payout, error)
	// ProcessPayout applies an operator action. Re-submitting the action that
	// produced the current terminal status returns the payout unchanged.
	ProcessPayout(ctx context.Context, payoutID string, action entity.PayoutAction, operatorID, notes string, failureReason *string) (*entity.Payout, error)
	CancelPayout(ctx context.Context, creatorID, payoutID string) (*entity.Payout, error)
	ListPayouts(ctx context.Context, creatorID string, status entity.PayoutStatus, limit, offset int) ([]*entity.Payout, error)
	ListAllPayouts(ctx context.Context, status entity.PayoutStatus, limit, offset int) ([]*entity.Payout, error)
}

type payoutRequest struct {
	CreatorID string                 `validate:"required"`
	Method    string                 `validate:"required,oneof=bank_transfer paypal stripe"`
	Details   map[string]interface{} `validate:"required,min=1"`
}

type payoutUseCase struct {
	uow       persistent.UnitOfWork
	notifier  Notifier
	minAmount money.Cents
	validate  *validator.Validate
	logger    *logger.Logger
	now       func() time.Time
}

func NewPayoutUseCase(uow persistent.UnitOfWork, notifier Notifier, minAmount money.Cents, logger *logger.Logger) PayoutUseCase {
	return &payoutUseCase{
		uow:       uow,
		notifier:  notifier,
		minAmount: minAmount,
		validate:  validator.New(),
		logger:    logger,
		now:       utcNow,
	}
}

func (uc *payoutUseCase) RequestPayout(ctx context.Context, creatorID string, amount money.Cents, method string, details map[string]interface{}) (*entity.Payout, error) {
	if err := uc.validate.Struct(payoutRequest{CreatorID: creatorID, Method: method, Details: details}); err != nil {
		return nil, apperror.ErrInvalidInput.Withf("invalid payout request: %v", err)
	}
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount
	}

	verification, err := uc.uow.Repositories().Verifications.Get(ctx, creatorID)
	if err != nil {
		uc.logger.Error("Failed to read verification status: %v", err)
		return nil, fmt.Errorf("failed to read verification status: %w", err)
	}
	if !approved(verification) {
		return nil, apperror.ErrNotApproved
	}
	if amount < uc.minAmount {
		return nil, apperror.ErrBelowMinimum.Withf("minimum payout is %s", uc.minAmount)
	}

	payout := &entity.Payout{
		CreatorID:     creatorID,
		Amount:        amount,
		Status:        entity.PayoutStatusPending,
		PayoutMethod:  method,
		PayoutDetails: details,
	}

	err = uc.uow.Do(ctx, func(repos *persistent.Repositories) error {
		// The verification row lock serializes requests per creator.
		verification, err := repos.Verifications.GetForUpdate(ctx, creatorID)
		if err != nil {
			return fmt.Errorf("failed to lock verification: %w", err)
		}
		if !approved(verification) {
			return apperror.ErrNotApproved
		}

		active, err := repos.Payouts.HasActive(ctx, creatorID)
		if err != nil {
			return fmt.Errorf("failed to check active payouts: %w", err)
		}
		if active {
			return apperror.ErrDuplicateRequest
		}

		earnings, err := computeEarnings(ctx, repos, creatorID)
		if err != nil {
			return err
		}
		if amount > earnings.PendingEarnings {
			return apperror.ErrInsufficientBalance.Withf("requested %s, available %s", amount, earnings.PendingEarnings)
		}

		now := uc.now()
		payout.CreatedAt = now
		payout.UpdatedAt = now
		return repos.Payouts.Create(ctx, payout)
	})
	if err != nil {
		if isFault(err) {
			uc.logger.Error("Failed to create payout request: %v", err)
			return nil, fmt.Errorf("failed to create payout request: %w", err)
		}
		return nil, err
	}

	uc.logger.Info("Payout %s requested by %s for %s", payout.ID, creatorID, amount)
	uc.notifier.Notify(EventPayoutRequested, payoutPayload(payout))
	return payout, nil
}

func approved(verification *entity.CreatorVerification) bool {
	return verification != nil && verification.Status == entity.VerificationStatusApproved
}

func (uc *payoutUseCase) ProcessPayout(ctx context.Context, payoutID string, action entity.PayoutAction, operatorID, notes string, failureReason *string) (*entity.Payout, error) {
	target, ok := action.TargetStatus()
	if !ok {
		return nil, apperror.ErrInvalidAction.Withf("unknown payout action %q", action)
	}

	return uc.transition(ctx, payoutID, target, operatorID, notes, failureReason, nil)
}

func (uc *payoutUseCase) CancelPayout(ctx context.Context, creatorID, payoutID string) (*entity.Payout, error) {
	return uc.transition(ctx, payoutID, entity.PayoutStatusCancelled, creatorID, "cancelled by creator", nil,
		func(payout *entity.Payout) error {
			if payout.CreatorID != creatorID {
				return apperror.ErrPayoutNotFound
			}
			if payout.Status == entity.PayoutStatusProcessing {
				return apperror.ErrInvalidState.Withf("payout is already being processed")
			}
			return nil
		})
}

// transition moves a payout to target inside one unit of work. check, when
// set, runs against the locked row before any state rule.
func (uc *payoutUseCase) transition(ctx context.Context, payoutID string, target entity.PayoutStatus, actorID, notes string, failureReason *string, check func(*entity.Payout) error) (*entity.Payout, error) {
	var (
		payout  *entity.Payout
		changed bool
	)
	err := uc.uow.Do(ctx, func(repos *persistent.Repositories) error {
		var err error
		payout, err = repos.Payouts.GetByIDForUpdate(ctx, payoutID)
		if err != nil {
			return fault(err, "failed to load payout")
		}
		if check != nil {
			if err := check(payout); err != nil {
				return err
			}
		}

		from := payout.Status
		if from == target {
			return nil
		}
		if from.IsTerminal() {
			return apperror.ErrInvalidState.Withf("payout is already %s", from)
		}
		if target == entity.PayoutStatusFailed && (failureReason == nil || *failureReason == "") {
			return apperror.ErrMissingField.Withf("failure_reason is required to reject a payout")
		}
		if target == entity.PayoutStatusProcessing && from != entity.PayoutStatusPending {
			return apperror.ErrInvalidState.Withf("payout is %s", from)
		}

		now := uc.now()
		if target == entity.PayoutStatusCompleted {
			if err := ensureCovered(ctx, repos, payout); err != nil {
				return err
			}
			entry := &entity.LedgerEntry{
				AccountID:   payout.CreatorID,
				Amount:      payout.Amount.Neg(),
				EntryType:   entity.EntryTypePayout,
				Description: fmt.Sprintf("payout %s via %s", payout.ID, payout.PayoutMethod),
				CreatedAt:   now,
			}
			if err := appendEntry(ctx, repos, entry); err != nil {
				return err
			}
			payout.LedgerEntryID = strPtr(entry.ID)
		}

		payout.Status = target
		payout.ProcessedBy = strPtr(actorID)
		payout.AdminNotes = notes
		if target == entity.PayoutStatusFailed {
			payout.FailureReason = failureReason
		}
		if target.IsTerminal() {
			payout.ProcessedAt = &now
		}
		payout.UpdatedAt = now

		if err := repos.Payouts.Update(ctx, payout, from); err != nil {
			return fault(err, "failed to update payout")
		}
		changed = true
		return nil
	})
	if err != nil {
		if isFault(err) {
			uc.logger.Error("Failed to process payout %s: %v", payoutID, err)
			return nil, fmt.Errorf("failed to process payout: %w", err)
		}
		return nil, err
	}

	if changed {
		uc.logger.WithField("actor_id", actorID).Info("Payout %s is now %s", payout.ID, payout.Status)
		uc.notifier.Notify(payoutEvent(payout.Status), payoutPayload(payout))
	}
	return payout, nil
}

// ensureCovered fails when the creator's balance, not counting the payout's
// own reservation, no longer covers it.
func ensureCovered(ctx context.Context, repos *persistent.Repositories, payout *entity.Payout) error {
	earnings, err := computeEarnings(ctx, repos, payout.CreatorID)
	if err != nil {
		return err
	}
	available := money.Sum(earnings.TotalEarnings, earnings.Adjustments, payout.Amount).
		Sub(earnings.Refunded).
		Sub(earnings.PaidOut).
		Sub(earnings.Reserved)
	if payout.Amount > available {
		return apperror.ErrInsufficientBalance.Withf("payout %s needs %s, available %s", payout.ID, payout.Amount, available)
	}
	return nil
}

func payoutEvent(status entity.PayoutStatus) string {
	switch status {
	case entity.PayoutStatusCompleted:
		return EventPayoutCompleted
	case entity.PayoutStatusFailed:
		return EventPayoutFailed
	case entity.PayoutStatusCancelled:
		return EventPayoutCancelled
	default:
		return EventPayoutProcessing
	}
}

func payoutPayload(payout *entity.Payout) map[string]interface{} {
	payload := map[string]interface{}{
		"payout_id":    payout.ID,
		"creator_id":   payout.CreatorID,
		"amount_cents": payout.Amount.Int64(),
		"amount":       payout.Amount.String(),
		"status":       string(payout.Status),
	}
	if payout.FailureReason != nil {
		payload["failure_reason"] = *payout.FailureReason
	}
	return payload
}

func (uc *payoutUseCase) ListPayouts(ctx context.Context, creatorID string, status entity.PayoutStatus, limit, offset int) ([]*entity.Payout, error) {
	payouts, err := uc.uow.Repositories().Payouts.ListByCreator(ctx, creatorID, status, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to list payouts: %v", err)
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	return payouts, nil
}

func (uc *payoutUseCase) ListAllPayouts(ctx context.Context, status entity.PayoutStatus, limit, offset int) ([]*entity.Payout, error) {
	payouts, err := uc.uow.Repositories().Payouts.ListByStatus(ctx, status, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to list payouts: %v", err)
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	return payouts, nil
}
