package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidstream/internal/model"
	"vidstream/internal/token"
)

// fakeResolver accepts any token the issuer verifies as an access
// token, without a backing user store.
type fakeResolver struct {
	issuer *token.Issuer
}

func (f *fakeResolver) ResolvePrincipal(_ context.Context, accessToken string) (*model.Principal, error) {
	claims, err := f.issuer.Verify(accessToken, token.PurposeAccess)
	if err != nil {
		return nil, model.ErrUnauthenticated
	}
	return &model.Principal{ID: claims.UserID, IssuedAt: claims.IssuedAt, ExpiresAt: claims.ExpiresAt}, nil
}

func newAuthTestMiddleware(t *testing.T) (*AuthMiddleware, string) {
	t.Helper()
	issuer, err := token.NewIssuer("test-secret", time.Minute, time.Hour)
	require.NoError(t, err)

	accessToken, _, err := issuer.IssueAccessToken("user-1")
	require.NoError(t, err)

	return NewAuthMiddleware(&fakeResolver{issuer: issuer}), accessToken
}

func principalEcho(t *testing.T, wantID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantID, principal.ID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_AcceptsCookie(t *testing.T) {
	mw, accessToken := newAuthTestMiddleware(t)

	req := httptest.NewRequest("GET", "/api/v1/users/current-user", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: accessToken})
	rec := httptest.NewRecorder()

	mw.RequireAuth(principalEcho(t, "user-1")).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_AcceptsBearerHeader(t *testing.T) {
	mw, accessToken := newAuthTestMiddleware(t)

	req := httptest.NewRequest("GET", "/api/v1/users/current-user", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()

	mw.RequireAuth(principalEcho(t, "user-1")).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_RejectsMissingAndGarbageTokens(t *testing.T) {
	mw, _ := newAuthTestMiddleware(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest("GET", "/api/v1/users/current-user", nil)
	rec := httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest("GET", "/api/v1/users/current-user", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	mw, _ := newAuthTestMiddleware(t)

	req := httptest.NewRequest("GET", "/api/v1/videos", nil)
	rec := httptest.NewRecorder()

	mw.OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := PrincipalFromContext(r.Context())
		assert.False(t, ok)
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuth_RejectsStaleToken(t *testing.T) {
	mw, _ := newAuthTestMiddleware(t)

	req := httptest.NewRequest("GET", "/api/v1/videos", nil)
	req.Header.Set("Authorization", "Bearer expired-or-forged")
	rec := httptest.NewRecorder()

	mw.OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
