package model

import "time"

// Video stores object-storage keys for the media bytes; the playback
// URLs returned to clients are presigned on the way out.
type Video struct {
	ID           string      `json:"id"`
	OwnerID      string      `json:"ownerId"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	VideoKey     string      `json:"-"`
	ThumbnailKey string      `json:"-"`
	Duration     float64     `json:"duration"`
	Views        int64       `json:"views"`
	IsPublished  bool        `json:"isPublished"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	Owner        UserSummary `json:"owner"`

	VideoURL     string `json:"videoUrl,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// PublishedVideo is the creation result: the stored record plus the
// one-time presigned upload targets for the media bytes.
type PublishedVideo struct {
	Video              Video  `json:"video"`
	VideoUploadURL     string `json:"videoUploadUrl"`
	ThumbnailUploadURL string `json:"thumbnailUploadUrl"`
}
