package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"lick-scroll-monetization/pkg/apperror"
	"lick-scroll-monetization/pkg/logger"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/repo/persistent"

	"github.com/go-playground/validator/v10"
)

type VerificationUseCase interface {
	// HandleWebhook authenticates and applies a provider callback. It reports
	// whether the stored decision changed.
	HandleWebhook(ctx context.Context, body []byte, signature string) (bool, error)
	ApplyEvent(ctx context.Context, event *entity.VerificationEvent) (bool, error)
	IsApproved(ctx context.Context, creatorID string) (bool, error)
}

type verificationWebhook struct {
	Provider   string    `json:"provider" validate:"required"`
	InquiryID  string    `json:"inquiry_id" validate:"required"`
	CreatorID  string    `json:"creator_id" validate:"required,uuid"`
	Decision   string    `json:"decision" validate:"required,oneof=pending approved rejected"`
	OccurredAt time.Time `json:"occurred_at" validate:"required"`
}

type verificationUseCase struct {
	uow      persistent.UnitOfWork
	secret   []byte
	validate *validator.Validate
	logger   *logger.Logger
	now      func() time.Time
}

func NewVerificationUseCase(uow persistent.UnitOfWork, webhookSecret string, logger *logger.Logger) VerificationUseCase {
	return &verificationUseCase{
		uow:      uow,
		secret:   []byte(webhookSecret),
		validate: validator.New(),
		logger:   logger,
		now:      utcNow,
	}
}

// Sign returns the hex HMAC-SHA256 of body that providers send along.
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (uc *verificationUseCase) HandleWebhook(ctx context.Context, body []byte, signature string) (bool, error) {
	if len(uc.secret) == 0 {
		return false, apperror.ErrInvalidSignature.Withf("webhook secret is not configured")
	}
	expected, err := hex.DecodeString(Sign(uc.secret, body))
	if err != nil {
		return false, fmt.Errorf("failed to sign body: %w", err)
	}
	given, err := hex.DecodeString(signature)
	if err != nil || !hmac.Equal(expected, given) {
		return false, apperror.ErrInvalidSignature
	}

	var payload verificationWebhook
	if err := json.Unmarshal(body, &payload); err != nil {
		return false, apperror.ErrInvalidInput.Withf("malformed webhook body: %v", err)
	}
	if err := uc.validate.Struct(payload); err != nil {
		return false, apperror.ErrInvalidInput.Withf("invalid webhook body: %v", err)
	}

	return uc.ApplyEvent(ctx, &entity.VerificationEvent{
		Provider:   payload.Provider,
		InquiryID:  payload.InquiryID,
		CreatorID:  payload.CreatorID,
		Decision:   entity.VerificationStatus(payload.Decision),
		OccurredAt: payload.OccurredAt.UTC(),
		Payload:    body,
	})
}

// ApplyEvent is safe to replay: a delivery already recorded is a no-op, and
// a decision older than the stored one never overwrites it.
func (uc *verificationUseCase) ApplyEvent(ctx context.Context, event *entity.VerificationEvent) (bool, error) {
	if !event.Decision.Valid() {
		return false, apperror.ErrInvalidInput.Withf("unknown decision %q", event.Decision)
	}

	var applied bool
	err := uc.uow.Do(ctx, func(repos *persistent.Repositories) error {
		fresh, err := repos.Verifications.RecordEvent(ctx, event)
		if err != nil {
			return fmt.Errorf("failed to record verification event: %w", err)
		}
		if !fresh {
			return nil
		}

		current, err := repos.Verifications.GetForUpdate(ctx, event.CreatorID)
		if err != nil {
			return fmt.Errorf("failed to load verification: %w", err)
		}
		if current != nil && current.DecidedAt.After(event.OccurredAt) {
			return nil
		}

		if err := repos.Verifications.Upsert(ctx, &entity.CreatorVerification{
			CreatorID: event.CreatorID,
			Status:    event.Decision,
			Provider:  event.Provider,
			InquiryID: event.InquiryID,
			DecidedAt: event.OccurredAt,
			UpdatedAt: uc.now(),
		}); err != nil {
			return fmt.Errorf("failed to store verification: %w", err)
		}
		applied = true
		return nil
	})
	if err != nil {
		uc.logger.Error("Failed to apply verification event %s/%s: %v", event.Provider, event.InquiryID, err)
		return false, err
	}

	if applied {
		uc.logger.Info("Creator %s verification is now %s", event.CreatorID, event.Decision)
	} else {
		uc.logger.Debug("Verification event %s/%s/%s ignored", event.Provider, event.InquiryID, event.Decision)
	}
	return applied, nil
}

func (uc *verificationUseCase) IsApproved(ctx context.Context, creatorID string) (bool, error) {
	verification, err := uc.uow.Repositories().Verifications.Get(ctx, creatorID)
	if err != nil {
		return false, fmt.Errorf("failed to read verification status: %w", err)
	}
	return approved(verification), nil
}
