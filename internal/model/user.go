package model

import "time"

// User is the credential record plus public profile fields. The
// RefreshTokenHash column holds the SHA-256 of the single currently
// valid refresh token, or NULL when the user is logged out.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Fullname         string    `json:"fullname"`
	Avatar           string    `json:"avatar,omitempty"`
	CoverImage       string    `json:"coverImage,omitempty"`
	PasswordHash     string    `json:"-"`
	RefreshTokenHash *string   `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// UserSummary is the profile shape embedded in responses and joined
// into video/comment/subscriber listings.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Avatar   string `json:"avatar,omitempty"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Fullname: u.Fullname, Avatar: u.Avatar}
}

// Principal is the verified identity attached to a request after the
// access token checks out. Reconstructed per request, never stored.
type Principal struct {
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is the result of login and refresh rotation.
type TokenPair struct {
	AccessToken      string      `json:"accessToken"`
	RefreshToken     string      `json:"refreshToken"`
	AccessExpiresAt  time.Time   `json:"accessExpiresAt"`
	RefreshExpiresAt time.Time   `json:"refreshExpiresAt"`
	User             UserSummary `json:"user"`
}

// ChannelProfile is a user profile enriched with subscription counts
// relative to the requesting viewer.
type ChannelProfile struct {
	UserSummary
	CoverImage        string `json:"coverImage,omitempty"`
	SubscriberCount   int    `json:"subscriberCount"`
	SubscribedToCount int    `json:"subscribedToCount"`
	IsSubscribed      bool   `json:"isSubscribed"`
}

// ChannelStats aggregates a channel's footprint across collections.
type ChannelStats struct {
	TotalVideos      int   `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int   `json:"totalSubscribers"`
	TotalLikes       int   `json:"totalLikes"`
}
