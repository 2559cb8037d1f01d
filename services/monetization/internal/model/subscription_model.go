package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	FanID     string    `gorm:"type:uuid;not null;uniqueIndex:ux_subscriptions_fan_creator,priority:1" json:"fan_id"`
	CreatorID string    `gorm:"type:uuid;not null;uniqueIndex:ux_subscriptions_fan_creator,priority:2;index" json:"creator_id"`
	Status    string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	AutoRenew bool      `gorm:"default:true" json:"auto_renew"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
