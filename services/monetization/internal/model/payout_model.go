package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PayoutModel: at most one row per creator in pending/processing, enforced
// by the partial unique index ux_payouts_creator_active (see migrations).
type PayoutModel struct {
	ID            string         `gorm:"type:uuid;primary_key" json:"id"`
	CreatorID     string         `gorm:"type:uuid;not null;index" json:"creator_id"`
	AmountCents   int64          `gorm:"not null;check:chk_payouts_amount_positive,amount_cents > 0" json:"amount_cents"`
	Status        string         `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PayoutMethod  string         `gorm:"type:varchar(50);not null" json:"payout_method"`
	PayoutDetails datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"payout_details"`
	ProcessedBy   *string        `gorm:"type:uuid" json:"processed_by,omitempty"`
	AdminNotes    string         `gorm:"type:text" json:"admin_notes"`
	FailureReason *string        `gorm:"type:text" json:"failure_reason,omitempty"`
	LedgerEntryID *string        `gorm:"type:uuid" json:"ledger_entry_id,omitempty"`
	ProcessedAt   *time.Time     `json:"processed_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (PayoutModel) TableName() string {
	return "payouts"
}

func (p *PayoutModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
