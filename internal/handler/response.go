package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"vidstream/internal/model"
	"vidstream/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "unexpected server error"
	var details []string

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		message = apiErr.Message
		if apiErr.Details != "" {
			details = []string{apiErr.Details}
		}
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		message = "invalid input"
		details = []string{err.Error()}
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "invalid credentials"
	case errors.Is(err, model.ErrUnauthenticated):
		status = http.StatusUnauthorized
		message = "authentication required"
	case errors.Is(err, model.ErrTokenInvalid), errors.Is(err, model.ErrTokenReuse):
		// Reuse detection stays server-side; the caller sees the same
		// answer either way.
		status = http.StatusUnauthorized
		message = "invalid or expired token"
	case errors.Is(err, model.ErrRotationConflict):
		status = http.StatusConflict
		message = "refresh already in progress"
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
		message = "access denied"
	case errors.Is(err, model.ErrUserAlreadyExists):
		status = http.StatusConflict
		message = "username or email already taken"
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		message = "user not found"
	case errors.Is(err, model.ErrVideoNotFound):
		status = http.StatusNotFound
		message = "video not found"
	case errors.Is(err, model.ErrCommentNotFound):
		status = http.StatusNotFound
		message = "comment not found"
	case errors.Is(err, model.ErrPlaylistNotFound):
		status = http.StatusNotFound
		message = "playlist not found"
	case errors.Is(err, model.ErrTweetNotFound):
		status = http.StatusNotFound
		message = "tweet not found"
	default:
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		StatusCode: status,
		Message:    message,
		Success:    false,
		Errors:     details,
	})
}

func badRequest(message string) *apierror.APIError {
	return apierror.New("BAD_REQUEST", message, "", http.StatusBadRequest)
}
