package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerEntryModel rows are insert-only.
type LedgerEntryModel struct {
	ID            string    `gorm:"type:uuid;primary_key" json:"id"`
	AccountID     string    `gorm:"type:uuid;not null;index:idx_ledger_entries_account_type,priority:1" json:"account_id"`
	AmountCents   int64     `gorm:"not null;check:chk_ledger_entries_amount_nonzero,amount_cents <> 0" json:"amount_cents"`
	EntryType     string    `gorm:"type:varchar(20);not null;index:idx_ledger_entries_account_type,priority:2" json:"entry_type"`
	TransactionID *string   `gorm:"type:uuid;index" json:"transaction_id,omitempty"`
	Description   string    `gorm:"type:text" json:"description"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

func (l *LedgerEntryModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
