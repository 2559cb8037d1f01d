package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionModel struct {
	ID              string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID          string    `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatorID       string    `gorm:"type:uuid;not null;index" json:"creator_id"`
	PostID          *string   `gorm:"type:uuid;index" json:"post_id,omitempty"`
	SubscriptionID  *string   `gorm:"type:uuid" json:"subscription_id,omitempty"`
	AmountCents     int64     `gorm:"not null" json:"amount_cents"`
	TransactionType string    `gorm:"type:varchar(20);not null" json:"transaction_type"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentProvider string    `gorm:"type:varchar(50);not null" json:"payment_provider"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

func (t *TransactionModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
