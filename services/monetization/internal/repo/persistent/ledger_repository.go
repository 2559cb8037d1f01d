package persistent

import (
	"context"

	"lick-scroll-monetization/pkg/money"
	"lick-scroll-monetization/services/monetization/internal/entity"
	"lick-scroll-monetization/services/monetization/internal/model"

	"gorm.io/gorm"
)

// LedgerRepository is append-only: there is no update or delete.
type LedgerRepository interface {
	Append(ctx context.Context, entry *entity.LedgerEntry) error
	SumForAccount(ctx context.Context, accountID string, entryTypes ...entity.EntryType) (money.Cents, error)
	SumByType(ctx context.Context, accountID string) (map[entity.EntryType]money.Cents, error)
	ListForAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.LedgerEntry, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Append(ctx context.Context, entry *entity.LedgerEntry) error {
	entryModel := ToLedgerEntryModel(entry)
	if err := r.db.WithContext(ctx).Create(entryModel).Error; err != nil {
		return err
	}
	entry.ID = entryModel.ID
	entry.CreatedAt = entryModel.CreatedAt
	return nil
}

func (r *ledgerRepository) SumForAccount(ctx context.Context, accountID string, entryTypes ...entity.EntryType) (money.Cents, error) {
	var sum int64
	query := r.db.WithContext(ctx).Model(&model.LedgerEntryModel{}).Where("account_id = ?", accountID)
	if len(entryTypes) > 0 {
		query = query.Where("entry_type IN ?", entryTypeStrings(entryTypes))
	}
	if err := query.Select("COALESCE(SUM(amount_cents), 0)").Scan(&sum).Error; err != nil {
		return 0, err
	}
	return money.Cents(sum), nil
}

func (r *ledgerRepository) SumByType(ctx context.Context, accountID string) (map[entity.EntryType]money.Cents, error) {
	var rows []struct {
		EntryType string
		Total     int64
	}
	err := r.db.WithContext(ctx).Model(&model.LedgerEntryModel{}).
		Select("entry_type, COALESCE(SUM(amount_cents), 0) AS total").
		Where("account_id = ?", accountID).
		Group("entry_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[entity.EntryType]money.Cents, len(rows))
	for _, row := range rows {
		sums[entity.EntryType(row.EntryType)] = money.Cents(row.Total)
	}
	return sums, nil
}

func (r *ledgerRepository) ListForAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	var entryModels []model.LedgerEntryModel
	query := r.db.WithContext(ctx).Where("account_id = ?", accountID).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*entity.LedgerEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = ToLedgerEntryEntity(&entryModels[i])
	}
	return entries, nil
}

func entryTypeStrings(types []entity.EntryType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
