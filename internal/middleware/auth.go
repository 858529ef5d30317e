package middleware

import (
	"context"
	"net/http"
	"strings"

	"vidstream/internal/model"
)

// AccessTokenCookie is the cookie carrying the access token. The
// Authorization header is a fallback for non-browser clients.
const AccessTokenCookie = "accessToken"

type principalResolver interface {
	ResolvePrincipal(ctx context.Context, accessToken string) (*model.Principal, error)
}

type contextKey string

const principalContextKey contextKey = "principal"

type AuthMiddleware struct {
	resolver principalResolver
}

func NewAuthMiddleware(resolver principalResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// RequireAuth rejects the request unless a valid access token arrives
// via cookie or bearer header. The verified principal lands in the
// request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractAccessToken(r)
		if token == "" {
			writeUnauthorized(w, http.StatusUnauthorized, "authentication required")
			return
		}

		principal, err := m.resolver.ResolvePrincipal(r.Context(), token)
		if err != nil {
			writeUnauthorized(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), principal)))
	})
}

// OptionalAuth attaches a principal when a valid token is presented
// and lets the request through anonymously otherwise. Listing and
// detail endpoints use it to personalize visibility without demanding
// a login. A presented-but-invalid token is still rejected, so a
// client cannot silently downgrade to anonymous with a stale token.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractAccessToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		principal, err := m.resolver.ResolvePrincipal(r.Context(), token)
		if err != nil {
			writeUnauthorized(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), principal)))
	})
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (*model.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(*model.Principal)
	return principal, ok
}

func withPrincipal(ctx context.Context, principal *model.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

func extractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && strings.TrimSpace(cookie.Value) != "" {
		return strings.TrimSpace(cookie.Value)
	}

	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func writeUnauthorized(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonEncode(w, model.APIResponse{
		StatusCode: status,
		Message:    message,
		Success:    false,
		Errors:     []string{message},
	})
}
