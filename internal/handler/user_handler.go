package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vidstream/internal/middleware"
	"vidstream/internal/model"
	"vidstream/internal/pagination"
	"vidstream/internal/service"
)

const refreshTokenCookie = "refreshToken"

// UserHandler covers registration, the session lifecycle, and the
// profile endpoints. Tokens travel as HttpOnly cookies with a bearer
// fallback for non-browser clients.
type UserHandler struct {
	auth         *service.AuthService
	users        *service.UserService
	cookieSecure bool
}

func NewUserHandler(auth *service.AuthService, users *service.UserService, cookieSecure bool) *UserHandler {
	return &UserHandler{auth: auth, users: users, cookieSecure: cookieSecure}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, badRequest("invalid JSON body"))
		return
	}

	user, err := h.auth.Register(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, user, "user registered")
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, badRequest("invalid JSON body"))
		return
	}

	pair, err := h.auth.Login(r.Context(), payload.Identifier, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookies(w, pair)
	writeSuccess(w, http.StatusOK, pair, "logged in")
}

// Refresh rotates the refresh token. The token may arrive as a cookie
// or in the body; the cookie wins when both are present.
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	refreshToken := ""
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		refreshToken = strings.TrimSpace(cookie.Value)
	}
	if refreshToken == "" {
		var payload struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err == nil {
			refreshToken = strings.TrimSpace(payload.RefreshToken)
		}
	}
	if refreshToken == "" {
		writeError(w, badRequest("refresh token is required"))
		return
	}

	pair, err := h.auth.Refresh(r.Context(), refreshToken)
	if err != nil {
		h.clearSessionCookies(w)
		writeError(w, err)
		return
	}

	h.setSessionCookies(w, pair)
	writeSuccess(w, http.StatusOK, pair, "token refreshed")
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated)
		return
	}

	if err := h.auth.Logout(r.Context(), principal.ID); err != nil {
		writeError(w, err)
		return
	}

	h.clearSessionCookies(w)
	writeSuccess(w, http.StatusOK, nil, "logged out")
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated)
		return
	}

	var payload model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, badRequest("invalid JSON body"))
		return
	}

	if err := h.auth.ChangePassword(r.Context(), principal.ID, payload.OldPassword, payload.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	// The refresh token was revoked with the password; drop the cookies
	// so the client re-authenticates cleanly.
	h.clearSessionCookies(w)
	writeSuccess(w, http.StatusOK, nil, "password changed")
}

func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated)
		return
	}

	user, err := h.users.CurrentUser(r.Context(), principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user, "current user")
}

func (h *UserHandler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(chi.URLParam(r, "username"))
	if username == "" {
		writeError(w, badRequest("username is required"))
		return
	}

	viewerID := ""
	if principal, ok := middleware.PrincipalFromContext(r.Context()); ok {
		viewerID = principal.ID
	}

	profile, err := h.users.ChannelProfile(r.Context(), username, viewerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, profile, "channel profile")
}

func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated)
		return
	}

	p := pagination.Parse(r.URL.Query())
	page, err := h.users.WatchHistory(r.Context(), principal.ID, p)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, page, "watch history")
}

func (h *UserHandler) setSessionCookies(w http.ResponseWriter, pair model.TokenPair) {
	http.SetCookie(w, h.sessionCookie(middleware.AccessTokenCookie, pair.AccessToken, pair.AccessExpiresAt))
	http.SetCookie(w, h.sessionCookie(refreshTokenCookie, pair.RefreshToken, pair.RefreshExpiresAt))
}

func (h *UserHandler) clearSessionCookies(w http.ResponseWriter) {
	expired := time.Unix(0, 0)
	http.SetCookie(w, h.sessionCookie(middleware.AccessTokenCookie, "", expired))
	http.SetCookie(w, h.sessionCookie(refreshTokenCookie, "", expired))
}

func (h *UserHandler) sessionCookie(name string, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}
