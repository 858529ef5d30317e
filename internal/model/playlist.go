package model

import "time"

type Playlist struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	VideoCount  int       `json:"videoCount"`
	Videos      []Video   `json:"videos,omitempty"`
}
