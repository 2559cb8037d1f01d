package entity

import "time"

type EntitlementType string

const (
	EntitlementTypePPVPurchase  EntitlementType = "ppv_purchase"
	EntitlementTypeSubscription EntitlementType = "subscription"
	EntitlementTypeGift         EntitlementType = "gift"
)

func (t EntitlementType) Valid() bool {
	switch t {
	case EntitlementTypePPVPurchase, EntitlementTypeSubscription, EntitlementTypeGift:
		return true
	}
	return false
}

// Entitlement grants UserID access to PostID. At most one unrevoked row
// exists per (UserID, PostID, Type).
type Entitlement struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	PostID        string          `json:"post_id"`
	Type          EntitlementType `json:"entitlement_type"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
	RevokedAt     *time.Time      `json:"revoked_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (e *Entitlement) ActiveAt(now time.Time) bool {
	if e.RevokedAt != nil {
		return false
	}
	return e.ExpiresAt == nil || e.ExpiresAt.After(now)
}
