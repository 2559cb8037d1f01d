package persistent

import (
	"context"
	"errors"
	"fmt"

	"lick-scroll-monetization/pkg/apperror"
	"lick-scroll-monetization/pkg/database"
	"lick-scroll-monetization/pkg/money"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const activePayoutIndex = "ux_payouts_creator_active"

type PayoutRepository interface {
	Create(ctx context.Context, payout *entity.Payout) error
	GetByID(ctx context.Context, id string) (*entity.Payout, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Payout, error)
	// Update persists payout only if its stored status is still from.
	Update(ctx context.Context, payout *entity.Payout, from entity.PayoutStatus) error
	ReservedForCreator(ctx context.Context, creatorID string) (money.Cents, error)
	HasActive(ctx context.Context, creatorID string) (bool, error)
	ListByCreator(ctx context.Context, creatorID string, status entity.PayoutStatus, limit, offset int) ([]*entity.Payout, error)
	ListByStatus(ctx context.Context, status entity.PayoutStatus, limit, offset int) ([]*entity.Payout, error)
}

type payoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) PayoutRepository {
	return &payoutRepository{db: db}
}

func (r *payoutRepository) Create(ctx context.Context, payout *entity.Payout) error {
	payoutModel, err := ToPayoutModel(payout)
	if err != nil {
		return fmt.Errorf("failed to encode payout details: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(payoutModel).Error; err != nil {
		if database.IsUniqueViolation(err, activePayoutIndex) {
			return apperror.ErrDuplicateRequest.Wrap("a payout request is already in progress", err)
		}
		return err
	}
	payout.ID = payoutModel.ID
	payout.CreatedAt = payoutModel.CreatedAt
	payout.UpdatedAt = payoutModel.UpdatedAt
	return nil
}

func (r *payoutRepository) GetByID(ctx context.Context, id string) (*entity.Payout, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *payoutRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Payout, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *payoutRepository) get(db *gorm.DB, id string) (*entity.Payout, error) {
	var payoutModel model.PayoutModel
	if err := db.Where("id = ?", id).First(&payoutModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrPayoutNotFound
		}
		return nil, err
	}
	return ToPayoutEntity(&payoutModel), nil
}

func (r *payoutRepository) Update(ctx context.Context, payout *entity.Payout, from entity.PayoutStatus) error {
	result := r.db.WithContext(ctx).Model(&model.PayoutModel{}).
		Where("id = ? AND status = ?", payout.ID, string(from)).
		Updates(map[string]interface{}{
			"status":          string(payout.Status),
			"processed_by":    payout.ProcessedBy,
			"admin_notes":     payout.AdminNotes,
			"failure_reason":  payout.FailureReason,
			"ledger_entry_id": payout.LedgerEntryID,
			"processed_at":    payout.ProcessedAt,
			"updated_at":      payout.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.ErrConcurrentUpdate.Withf("payout %s is no longer %s", payout.ID, from)
	}
	return nil
}

func (r *payoutRepository) ReservedForCreator(ctx context.Context, creatorID string) (money.Cents, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&model.PayoutModel{}).
		Where("creator_id = ? AND status IN ?", creatorID, activeStatusStrings()).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	return money.Cents(sum), nil
}

func (r *payoutRepository) HasActive(ctx context.Context, creatorID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PayoutModel{}).
		Where("creator_id = ? AND status IN ?", creatorID, activeStatusStrings()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *payoutRepository) ListByCreator(ctx context.Context, creatorID string, status entity.PayoutStatus, limit, offset int) ([]*entity.Payout, error) {
	query := r.db.WithContext(ctx).Where("creator_id = ?", creatorID)
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	return r.list(query, limit, offset)
}

func (r *payoutRepository) ListByStatus(ctx context.Context, status entity.PayoutStatus, limit, offset int) ([]*entity.Payout, error) {
	query := r.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	return r.list(query, limit, offset)
}

func (r *payoutRepository) list(query *gorm.DB, limit, offset int) ([]*entity.Payout, error) {
	var payoutModels []model.PayoutModel
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&payoutModels).Error; err != nil {
		return nil, err
	}

	payouts := make([]*entity.Payout, len(payoutModels))
	for i := range payoutModels {
		payouts[i] = ToPayoutEntity(&payoutModels[i])
	}
	return payouts, nil
}

func activeStatusStrings() []string {
	out := make([]string, len(entity.ActivePayoutStatuses))
	for i, s := range entity.ActivePayoutStatuses {
		out[i] = string(s)
	}
	return out
}
