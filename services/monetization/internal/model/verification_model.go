package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreatorVerificationModel struct {
	CreatorID string    `gorm:"type:uuid;primary_key" json:"creator_id"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Provider  string    `gorm:"type:varchar(50)" json:"provider"`
	InquiryID string    `gorm:"type:varchar(191)" json:"inquiry_id"`
	DecidedAt time.Time `json:"decided_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CreatorVerificationModel) TableName() string {
	return "creator_verifications"
}

type VerificationEventModel struct {
	ID         string         `gorm:"type:uuid;primary_key" json:"id"`
	Provider   string         `gorm:"type:varchar(50);not null;uniqueIndex:ux_verification_events_delivery,priority:1" json:"provider"`
	InquiryID  string         `gorm:"type:varchar(191);not null;uniqueIndex:ux_verification_events_delivery,priority:2" json:"inquiry_id"`
	Decision   string         `gorm:"type:varchar(20);not null;uniqueIndex:ux_verification_events_delivery,priority:3" json:"decision"`
	CreatorID  string         `gorm:"type:uuid;not null;index" json:"creator_id"`
	OccurredAt time.Time      `gorm:"not null" json:"occurred_at"`
	Payload    datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (VerificationEventModel) TableName() string {
	return "verification_events"
}

func (v *VerificationEventModel) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}
