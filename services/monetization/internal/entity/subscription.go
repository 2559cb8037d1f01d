package entity

import "time"

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

type Subscription struct {
	ID        string             `json:"id"`
	FanID     string             `json:"fan_id"`
	CreatorID string             `json:"creator_id"`
	Status    SubscriptionStatus `json:"status"`
	ExpiresAt time.Time          `json:"expires_at"`
	AutoRenew bool               `json:"auto_renew"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (s *Subscription) ActiveAt(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && s.ExpiresAt.After(now)
}
