package model

import "errors"

var (
	// User / credential errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token errors
	ErrTokenInvalid     = errors.New("token invalid")
	ErrTokenReuse       = errors.New("refresh token reuse detected")
	ErrRotationConflict = errors.New("concurrent token rotation")
	ErrUnauthenticated  = errors.New("unauthenticated")

	// Resource errors
	ErrVideoNotFound    = errors.New("video not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrTweetNotFound    = errors.New("tweet not found")

	// Authorization
	ErrForbidden = errors.New("forbidden")

	// Generic
	ErrInvalidInput = errors.New("invalid input")
)
