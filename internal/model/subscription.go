package model

import "time"

// Subscription links a subscriber to a channel (both users). The
// (subscriber, channel) pair is unique; toggling flips existence.
type Subscription struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriberId"`
	ChannelID    string    `json:"channelId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToggleResult reports the state after a toggle operation.
type ToggleResult struct {
	Active bool `json:"active"`
}
