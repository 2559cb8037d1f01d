package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntitlementModel struct {
	ID              string     `gorm:"type:uuid;primary_key" json:"id"`
	UserID          string     `gorm:"type:uuid;not null;uniqueIndex:ux_entitlements_active,priority:1,where:revoked_at IS NULL" json:"user_id"`
	PostID          string     `gorm:"type:uuid;not null;uniqueIndex:ux_entitlements_active,priority:2,where:revoked_at IS NULL" json:"post_id"`
	EntitlementType string     `gorm:"type:varchar(20);not null;uniqueIndex:ux_entitlements_active,priority:3,where:revoked_at IS NULL" json:"entitlement_type"`
	TransactionID   *string    `gorm:"type:uuid;index" json:"transaction_id,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	RevokedAt       *time.Time `json:"revoked_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (EntitlementModel) TableName() string {
	return "entitlements"
}

func (e *EntitlementModel) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}
