package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vidstream/internal/model"
)

// Purpose distinguishes the two token kinds so one can never be
// replayed as the other.
type Purpose string

const (
	PurposeAccess  Purpose = "access"
	PurposeRefresh Purpose = "refresh"
)

// Claims is the verified assertion carried by a token.
type Claims struct {
	UserID    string
	TokenID   string
	Purpose   Purpose
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer mints and verifies HS256-signed tokens. It is pure over the
// injected secret: no I/O, safe for concurrent use.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIssuer(secret string, accessTTL time.Duration, refreshTTL time.Duration) (*Issuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token signing secret is required")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token TTLs must be positive")
	}

	return &Issuer{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}, nil
}

func (i *Issuer) IssueAccessToken(userID string) (string, time.Time, error) {
	return i.issue(userID, PurposeAccess, i.accessTTL)
}

func (i *Issuer) IssueRefreshToken(userID string) (string, time.Time, error) {
	return i.issue(userID, PurposeRefresh, i.refreshTTL)
}

func (i *Issuer) issue(userID string, purpose Purpose, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)

	claims := jwt.MapClaims{
		"sub": userID,
		"typ": string(purpose),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Verify checks signature, expiry, and purpose. Every failure mode
// collapses to ErrTokenInvalid; callers must not be able to tell an
// expired token from a forged one.
func (i *Issuer) Verify(tokenString string, expected Purpose) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrTokenInvalid
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, model.ErrTokenInvalid
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrTokenInvalid
	}

	typ, _ := claimsMap["typ"].(string)
	if Purpose(typ) != expected {
		return nil, model.ErrTokenInvalid
	}

	sub, _ := claimsMap["sub"].(string)
	if sub == "" {
		return nil, model.ErrTokenInvalid
	}

	claims := &Claims{
		UserID:  sub,
		Purpose: Purpose(typ),
	}
	claims.TokenID, _ = claimsMap["jti"].(string)

	if iat, ok := claimsMap["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0).UTC()
	}
	if exp, ok := claimsMap["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	} else {
		// A token without an expiry is never acceptable.
		return nil, model.ErrTokenInvalid
	}

	return claims, nil
}
