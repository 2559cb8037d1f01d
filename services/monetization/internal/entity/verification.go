package entity

import "time"

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationStatusPending, VerificationStatusApproved, VerificationStatusRejected:
		return true
	}
	return false
}

// CreatorVerification is the latest identity-verification decision.
type CreatorVerification struct {
	CreatorID string             `json:"creator_id"`
	Status    VerificationStatus `json:"status"`
	Provider  string             `json:"provider"`
	InquiryID string             `json:"inquiry_id"`
	DecidedAt time.Time          `json:"decided_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// VerificationEvent is one webhook delivery, deduplicated by
// (Provider, InquiryID, Decision).
type VerificationEvent struct {
	ID         string             `json:"id"`
	Provider   string             `json:"provider"`
	InquiryID  string             `json:"inquiry_id"`
	CreatorID  string             `json:"creator_id"`
	Decision   VerificationStatus `json:"decision"`
	OccurredAt time.Time          `json:"occurred_at"`
	Payload    []byte             `json:"-"`
	CreatedAt  time.Time          `json:"created_at"`
}
