package model

import "time"

// Tweet is a short text post on a channel.
type Tweet struct {
	ID        string      `json:"id"`
	OwnerID   string      `json:"ownerId"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Owner     UserSummary `json:"owner"`
}
