package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lick-scroll-monetization/pkg/apperror"
	"lick-scroll-monetization/pkg/logger"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/repo/cache"
	"lick-scroll-monetization/services/monetization/internal/repo/persistent"
)

type EntitlementUseCase interface {
	// HasAccess decides whether userID may view contentID. An empty userID
	// is an anonymous caller.
	HasAccess(ctx context.Context, userID, contentID string) (bool, error)
	// Grant is idempotent: a repeat grant returns created=false and no error.
	Grant(ctx context.Context, userID, contentID string, entitlementType entity.EntitlementType, expiresAt *time.Time, transactionID *string) (*entity.Entitlement, bool, error)
	ListForUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Entitlement, error)
	ExpireSubscriptions(ctx context.Context) (int64, error)
}

type entitlementUseCase struct {
	uow          persistent.UnitOfWork
	contentCache cache.ContentCache
	logger       *logger.Logger
	now          func() time.Time
}

func NewEntitlementUseCase(uow persistent.UnitOfWork, contentCache cache.ContentCache, logger *logger.Logger) EntitlementUseCase {
	if contentCache == nil {
		contentCache = cache.NewContentCache(nil, 0)
	}
	return &entitlementUseCase{
		uow:          uow,
		contentCache: contentCache,
		logger:       logger,
		now:          utcNow,
	}
}

func (uc *entitlementUseCase) HasAccess(ctx context.Context, userID, contentID string) (bool, error) {
	content, err := uc.lookupContent(ctx, contentID)
	if err != nil {
		return false, err
	}

	if content.Visibility == entity.VisibilityFree {
		return true, nil
	}
	if userID == "" {
		return false, nil
	}

	repos := uc.uow.Repositories()
	now := uc.now()

	switch content.Visibility {
	case entity.VisibilitySubscriber:
		subscription, err := repos.Subscriptions.Get(ctx, userID, content.OwnerID)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return false, nil
			}
			uc.logger.Error("Failed to load subscription: %v", err)
			return false, fmt.Errorf("failed to check subscription: %w", err)
		}
		return subscription.ActiveAt(now), nil

	case entity.VisibilityPPV:
		if content.OwnerID == userID {
			return true, nil
		}
		owned, err := repos.Entitlements.HasActive(ctx, userID, contentID, now,
			entity.EntitlementTypePPVPurchase, entity.EntitlementTypeGift)
		if err != nil {
			uc.logger.Error("Failed to check entitlements: %v", err)
			return false, fmt.Errorf("failed to check entitlements: %w", err)
		}
		return owned, nil
	}

	return false, nil
}

func (uc *entitlementUseCase) lookupContent(ctx context.Context, contentID string) (*entity.Content, error) {
	cached, err := uc.contentCache.Get(ctx, contentID)
	if err != nil {
		uc.logger.Warn("Content cache read failed for %s: %v", contentID, err)
	}
	if cached != nil {
		return cached, nil
	}

	content, err := uc.uow.Repositories().Contents.GetByID(ctx, contentID)
	if err != nil {
		return nil, fault(err, "failed to load content")
	}
	if err := uc.contentCache.Set(ctx, content); err != nil {
		uc.logger.Warn("Content cache write failed for %s: %v", contentID, err)
	}
	return content, nil
}

func (uc *entitlementUseCase) Grant(ctx context.Context, userID, contentID string, entitlementType entity.EntitlementType, expiresAt *time.Time, transactionID *string) (*entity.Entitlement, bool, error) {
	if userID == "" || contentID == "" {
		return nil, false, apperror.ErrMissingField.Withf("user_id and content_id are required")
	}
	if !entitlementType.Valid() {
		return nil, false, apperror.ErrInvalidInput.Withf("unknown entitlement type %q", entitlementType)
	}
	if _, err := uc.uow.Repositories().Contents.GetByID(ctx, contentID); err != nil {
		return nil, false, fault(err, "failed to load content")
	}

	entitlement := &entity.Entitlement{
		UserID:        userID,
		PostID:        contentID,
		Type:          entitlementType,
		TransactionID: transactionID,
		ExpiresAt:     expiresAt,
		CreatedAt:     uc.now(),
	}

	var created bool
	err := uc.uow.Do(ctx, func(repos *persistent.Repositories) error {
		var err error
		created, err = repos.Entitlements.Grant(ctx, entitlement)
		return err
	})
	if err != nil {
		uc.logger.Error("Failed to grant entitlement: %v", err)
		return nil, false, fmt.Errorf("failed to grant entitlement: %w", err)
	}
	if !created {
		uc.logger.Debug("Entitlement %s for user %s on %s already present", entitlementType, userID, contentID)
	}
	return entitlement, created, nil
}

func (uc *entitlementUseCase) ListForUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Entitlement, error) {
	entitlements, err := uc.uow.Repositories().Entitlements.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to list entitlements: %v", err)
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}
	return entitlements, nil
}

func (uc *entitlementUseCase) ExpireSubscriptions(ctx context.Context) (int64, error) {
	var expired int64
	err := uc.uow.Do(ctx, func(repos *persistent.Repositories) error {
		var err error
		expired, err = repos.Subscriptions.ExpireDue(ctx, uc.now())
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to expire subscriptions: %w", err)
	}
	return expired, nil
}
