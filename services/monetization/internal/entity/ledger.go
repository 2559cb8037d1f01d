package entity

import (
	"time"

	"lick-scroll-monetization/pkg/money"
)

type EntryType string

const (
	EntryTypeEarnings   EntryType = "earnings"
	EntryTypePayout     EntryType = "payout"
	EntryTypeAdjustment EntryType = "adjustment"
	EntryTypeRefund     EntryType = "refund"
)

func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeEarnings, EntryTypePayout, EntryTypeAdjustment, EntryTypeRefund:
		return true
	}
	return false
}

// LedgerEntry is an immutable signed money fact for one account (a creator).
type LedgerEntry struct {
	ID            string      `json:"id"`
	AccountID     string      `json:"account_id"`
	Amount        money.Cents `json:"amount_cents"`
	EntryType     EntryType   `json:"entry_type"`
	TransactionID *string     `json:"transaction_id,omitempty"`
	Description   string      `json:"description"`
	CreatedAt     time.Time   `json:"created_at"`
}

// Earnings is the creator-facing balance derived from the ledger.
type Earnings struct {
	CreatorID       string      `json:"creator_id"`
	TotalEarnings   money.Cents `json:"total_earnings_cents"`
	PendingEarnings money.Cents `json:"pending_earnings_cents"`
	PaidOut         money.Cents `json:"paid_out_cents"`
	Reserved        money.Cents `json:"reserved_cents"`
	Refunded        money.Cents `json:"refunded_cents"`
	Adjustments     money.Cents `json:"adjustments_cents"`
}

// Statement points at an exported earnings statement.
type Statement struct {
	CreatorID   string    `json:"creator_id"`
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	Entries     int       `json:"entries"`
	GeneratedAt time.Time `json:"generated_at"`
}
