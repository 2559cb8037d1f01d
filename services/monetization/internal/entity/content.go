package entity

import "lick-scroll-monetization/pkg/money"

type ContentKind string

const (
	ContentKindPost    ContentKind = "post"
	ContentKindStream  ContentKind = "stream"
	ContentKindMessage ContentKind = "message"
)

type Visibility string

const (
	VisibilityFree       Visibility = "free"
	VisibilitySubscriber Visibility = "subscriber"
	VisibilityPPV        Visibility = "ppv"
)

// Content is the read model of anything access can be sold for: posts,
// pay-per-view streams and paid messages. The post service owns the rows.
type Content struct {
	ID         string      `json:"id"`
	OwnerID    string      `json:"owner_id"`
	Kind       ContentKind `json:"kind"`
	Visibility Visibility  `json:"visibility"`
	Price      money.Cents `json:"price_cents"`
}

type CreatorProfile struct {
	CreatorID         string      `json:"creator_id"`
	SubscriptionPrice money.Cents `json:"subscription_price_cents"`
}
