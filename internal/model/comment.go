package model

import "time"

type Comment struct {
	ID        string      `json:"id"`
	VideoID   string      `json:"videoId"`
	OwnerID   string      `json:"ownerId"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Owner     UserSummary `json:"owner"`
}
