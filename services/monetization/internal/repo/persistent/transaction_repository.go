package persistent

import (
	"context"
	"errors"
	"time"

	"lick-scroll-monetization/pkg/apperror"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Transaction, error)
	// UpdateStatus moves from -> to; it fails with ErrConcurrentUpdate when
	// the row is no longer in from.
	UpdateStatus(ctx context.Context, id string, from, to entity.TransactionStatus) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := ToTransactionModel(transaction)
	if err := r.db.WithContext(ctx).Create(transactionModel).Error; err != nil {
		return err
	}
	transaction.ID = transactionModel.ID
	transaction.CreatedAt = transactionModel.CreatedAt
	transaction.UpdatedAt = transactionModel.UpdatedAt
	return nil
}

func (r *transactionRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&transactionModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrTransactionNotFound
		}
		return nil, err
	}
	return ToTransactionEntity(&transactionModel), nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id string, from, to entity.TransactionStatus) error {
	result := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.ErrConcurrentUpdate.Withf("transaction %s is no longer %s", id, from)
	}
	return nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = ToTransactionEntity(&transactionModels[i])
	}
	return transactions, nil
}
