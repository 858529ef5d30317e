package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddleware_LimitedAuthEndpoint(t *testing.T) {
	mw := NewRateLimitMiddleware(100, 1)

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Burst of 1 on the auth bucket: first login attempt passes, the
	// immediate second one is throttled.
	req1 := httptest.NewRequest("POST", "/api/v1/users/login", nil)
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, req1)
	assert.Equal(t, http.StatusOK, rec1.Code)

	req2 := httptest.NewRequest("POST", "/api/v1/users/login", nil)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
	assert.Equal(t, "60", rec2.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_GeneralBucketUnaffectedByAuthBucket(t *testing.T) {
	mw := NewRateLimitMiddleware(100, 1)

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Exhaust the auth bucket.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/api/v1/users/login", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	// General traffic from the same client still flows.
	req := httptest.NewRequest("GET", "/api/v1/videos", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitMiddleware_SeparateClients(t *testing.T) {
	mw := NewRateLimitMiddleware(100, 1)

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req1 := httptest.NewRequest("POST", "/api/v1/users/login", nil)
	req1.Header.Set("X-Forwarded-For", "10.0.0.1")
	handler.ServeHTTP(httptest.NewRecorder(), req1)

	// A different client IP gets its own bucket.
	req2 := httptest.NewRequest("POST", "/api/v1/users/login", nil)
	req2.Header.Set("X-Forwarded-For", "10.0.0.2")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req2)
	assert.Equal(t, http.StatusOK, rec.Code)
}
