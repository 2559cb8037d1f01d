package entity

import (
	"time"

	"lick-scroll-monetization/pkg/money"
)

type TransactionType string

const (
	TransactionTypeSubscription TransactionType = "subscription"
	TransactionTypePPV          TransactionType = "ppv"
	TransactionTypeTip          TransactionType = "tip"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusRefunded  TransactionStatus = "refunded"
)

// Transaction is one priced event between a payer and a creator.
type Transaction struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	CreatorID       string            `json:"creator_id"`
	PostID          *string           `json:"post_id,omitempty"`
	SubscriptionID  *string           `json:"subscription_id,omitempty"`
	Amount          money.Cents       `json:"amount_cents"`
	Type            TransactionType   `json:"transaction_type"`
	Status          TransactionStatus `json:"status"`
	PaymentProvider string            `json:"payment_provider"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// PurchaseResult is returned by every purchase path.
type PurchaseResult struct {
	TransactionID  string     `json:"transaction_id"`
	SubscriptionID string     `json:"subscription_id,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}
