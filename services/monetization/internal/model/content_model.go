package model

import "time"

// ContentModel is maintained by the post service; this service only reads it.
type ContentModel struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID    string    `gorm:"type:uuid;not null;index" json:"owner_id"`
	Kind       string    `gorm:"type:varchar(20);not null;default:'post'" json:"kind"`
	Visibility string    `gorm:"type:varchar(20);not null;default:'free'" json:"visibility"`
	PriceCents int64     `gorm:"not null;default:0" json:"price_cents"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (ContentModel) TableName() string {
	return "contents"
}

type CreatorProfileModel struct {
	CreatorID              string    `gorm:"type:uuid;primary_key" json:"creator_id"`
	SubscriptionPriceCents int64     `gorm:"not null;default:0" json:"subscription_price_cents"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func (CreatorProfileModel) TableName() string {
	return "creator_profiles"
}
