package persistent

import (
	"context"
	"errors"
	"time"

	"lick-scroll-monetization/pkg/apperror"
	"lick-scroll-monetization/pkg/database"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository interface {
	Get(ctx context.Context, fanID, creatorID string) (*entity.Subscription, error)
	GetForUpdate(ctx context.Context, fanID, creatorID string) (*entity.Subscription, error)
	GetByID(ctx context.Context, id string) (*entity.Subscription, error)
	Create(ctx context.Context, subscription *entity.Subscription) error
	Update(ctx context.Context, subscription *entity.Subscription) error
	// ExpireDue flips active subscriptions past their expiry to expired.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Get(ctx context.Context, fanID, creatorID string) (*entity.Subscription, error) {
	return r.get(r.db.WithContext(ctx), fanID, creatorID)
}

func (r *subscriptionRepository) GetForUpdate(ctx context.Context, fanID, creatorID string) (*entity.Subscription, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), fanID, creatorID)
}

func (r *subscriptionRepository) get(db *gorm.DB, fanID, creatorID string) (*entity.Subscription, error) {
	var subscriptionModel model.SubscriptionModel
	err := db.Where("fan_id = ? AND creator_id = ?", fanID, creatorID).First(&subscriptionModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound.Withf("no subscription from %s to %s", fanID, creatorID)
		}
		return nil, err
	}
	return ToSubscriptionEntity(&subscriptionModel), nil
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id string) (*entity.Subscription, error) {
	var subscriptionModel model.SubscriptionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&subscriptionModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound.Withf("subscription %s not found", id)
		}
		return nil, err
	}
	return ToSubscriptionEntity(&subscriptionModel), nil
}

func (r *subscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	subscriptionModel := ToSubscriptionModel(subscription)
	if err := r.db.WithContext(ctx).Create(subscriptionModel).Error; err != nil {
		if database.IsUniqueViolation(err, "ux_subscriptions_fan_creator") {
			return apperror.ErrConcurrentUpdate.Wrap("subscription created concurrently", err)
		}
		return err
	}
	subscription.ID = subscriptionModel.ID
	subscription.CreatedAt = subscriptionModel.CreatedAt
	subscription.UpdatedAt = subscriptionModel.UpdatedAt
	return nil
}

func (r *subscriptionRepository) Update(ctx context.Context, subscription *entity.Subscription) error {
	return r.db.WithContext(ctx).Model(&model.SubscriptionModel{}).
		Where("id = ?", subscription.ID).
		Updates(map[string]interface{}{
			"status":     string(subscription.Status),
			"expires_at": subscription.ExpiresAt,
			"auto_renew": subscription.AutoRenew,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *subscriptionRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.SubscriptionModel{}).
		Where("status = ? AND expires_at <= ?", string(entity.SubscriptionStatusActive), now).
		Updates(map[string]interface{}{
			"status":     string(entity.SubscriptionStatusExpired),
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
