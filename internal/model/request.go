package model

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

type LoginRequest struct {
	// Identifier is a username or an email address.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type PublishVideoRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
}

type UpdateVideoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

type TweetRequest struct {
	Content string `json:"content"`
}

type PlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
