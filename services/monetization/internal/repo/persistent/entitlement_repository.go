package persistent

import (
	"context"
	"time"

	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EntitlementRepository interface {
	// Grant inserts unless an active row for (user, post, type) exists.
	// Expired rows for the key are revoked first so they can be replaced.
	// It reports whether a row was created.
	Grant(ctx context.Context, entitlement *entity.Entitlement) (bool, error)
	HasActive(ctx context.Context, userID, postID string, now time.Time, types ...entity.EntitlementType) (bool, error)
	RevokeByTransaction(ctx context.Context, transactionID string, at time.Time) (int64, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Entitlement, error)
}

type entitlementRepository struct {
	db *gorm.DB
}

func NewEntitlementRepository(db *gorm.DB) EntitlementRepository {
	return &entitlementRepository{db: db}
}

func (r *entitlementRepository) Grant(ctx context.Context, entitlement *entity.Entitlement) (bool, error) {
	now := entitlement.CreatedAt
	if now.IsZero() {
		now = time.Now().UTC()
		entitlement.CreatedAt = now
	}

	err := r.db.WithContext(ctx).Model(&model.EntitlementModel{}).
		Where("user_id = ? AND post_id = ? AND entitlement_type = ?", entitlement.UserID, entitlement.PostID, string(entitlement.Type)).
		Where("revoked_at IS NULL AND expires_at IS NOT NULL AND expires_at <= ?", now).
		Update("revoked_at", now).Error
	if err != nil {
		return false, err
	}

	entitlementModel := ToEntitlementModel(entitlement)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "post_id"}, {Name: "entitlement_type"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "revoked_at IS NULL"},
		}},
		DoNothing: true,
	}).Create(entitlementModel)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	entitlement.ID = entitlementModel.ID
	entitlement.CreatedAt = entitlementModel.CreatedAt
	return true, nil
}

func (r *entitlementRepository) HasActive(ctx context.Context, userID, postID string, now time.Time, types ...entity.EntitlementType) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.EntitlementModel{}).
		Where("user_id = ? AND post_id = ? AND revoked_at IS NULL", userID, postID).
		Where("expires_at IS NULL OR expires_at > ?", now)
	if len(types) > 0 {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = string(t)
		}
		query = query.Where("entitlement_type IN ?", names)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *entitlementRepository) RevokeByTransaction(ctx context.Context, transactionID string, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.EntitlementModel{}).
		Where("transaction_id = ? AND revoked_at IS NULL", transactionID).
		Update("revoked_at", at)
	return result.RowsAffected, result.Error
}

func (r *entitlementRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Entitlement, error) {
	var entitlementModels []model.EntitlementModel
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&entitlementModels).Error; err != nil {
		return nil, err
	}

	entitlements := make([]*entity.Entitlement, len(entitlementModels))
	for i := range entitlementModels {
		entitlements[i] = ToEntitlementEntity(&entitlementModels[i])
	}
	return entitlements, nil
}
