package entity

import (
	"time"

	"lick-scroll-monetization/pkg/money"
)

type PayoutStatus string

const (
	PayoutStatusPending    PayoutStatus = "pending"
	PayoutStatusProcessing PayoutStatus = "processing"
	PayoutStatusCompleted  PayoutStatus = "completed"
	PayoutStatusFailed     PayoutStatus = "failed"
	PayoutStatusCancelled  PayoutStatus = "cancelled"
)

// ActivePayoutStatuses reserve funds and block new requests.
var ActivePayoutStatuses = []PayoutStatus{PayoutStatusPending, PayoutStatusProcessing}

func (s PayoutStatus) IsTerminal() bool {
	return s == PayoutStatusCompleted || s == PayoutStatusFailed || s == PayoutStatusCancelled
}

type PayoutAction string

const (
	PayoutActionApprove    PayoutAction = "approve"
	PayoutActionComplete   PayoutAction = "complete"
	PayoutActionReject     PayoutAction = "reject"
	PayoutActionFail       PayoutAction = "fail"
	PayoutActionCancel     PayoutAction = "cancel"
	PayoutActionProcessing PayoutAction = "processing"
)

// TargetStatus maps an operator action to the status it produces.
func (a PayoutAction) TargetStatus() (PayoutStatus, bool) {
	switch a {
	case PayoutActionApprove, PayoutActionComplete:
		return PayoutStatusCompleted, true
	case PayoutActionReject, PayoutActionFail:
		return PayoutStatusFailed, true
	case PayoutActionCancel:
		return PayoutStatusCancelled, true
	case PayoutActionProcessing:
		return PayoutStatusProcessing, true
	}
	return "", false
}

type Payout struct {
	ID            string                 `json:"id"`
	CreatorID     string                 `json:"creator_id"`
	Amount        money.Cents            `json:"amount_cents"`
	Status        PayoutStatus           `json:"status"`
	PayoutMethod  string                 `json:"payout_method"`
	PayoutDetails map[string]interface{} `json:"payout_details,omitempty"`
	ProcessedBy   *string                `json:"processed_by,omitempty"`
	AdminNotes    string                 `json:"admin_notes,omitempty"`
	FailureReason *string                `json:"failure_reason,omitempty"`
	LedgerEntryID *string                `json:"ledger_entry_id,omitempty"`
	ProcessedAt   *time.Time             `json:"processed_at,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}
