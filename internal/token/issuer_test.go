package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidstream/internal/model"
)

const testSecret = "test-signing-secret"

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	issuer, err := NewIssuer(testSecret, 15*time.Minute, 240*time.Hour)
	require.NoError(t, err)
	return issuer
}

func TestNewIssuer(t *testing.T) {
	_, err := NewIssuer("", time.Minute, time.Hour)
	assert.Error(t, err)

	_, err = NewIssuer("secret", 0, time.Hour)
	assert.Error(t, err)

	_, err = NewIssuer("secret", time.Minute, time.Hour)
	assert.NoError(t, err)
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	issuer := newTestIssuer(t)

	signed, expiresAt, err := issuer.IssueAccessToken("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := issuer.Verify(signed, PurposeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, PurposeAccess, claims.Purpose)
	assert.NotEmpty(t, claims.TokenID)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt, time.Second)
}

func TestVerifyRejectsWrongPurpose(t *testing.T) {
	issuer := newTestIssuer(t)

	access, _, err := issuer.IssueAccessToken("user-1")
	require.NoError(t, err)
	refresh, _, err := issuer.IssueRefreshToken("user-1")
	require.NoError(t, err)

	_, err = issuer.Verify(access, PurposeRefresh)
	assert.ErrorIs(t, err, model.ErrTokenInvalid)

	_, err = issuer.Verify(refresh, PurposeAccess)
	assert.ErrorIs(t, err, model.ErrTokenInvalid)
}

func TestVerifyRejectsForgedToken(t *testing.T) {
	issuer := newTestIssuer(t)

	other, err := NewIssuer("some-other-secret", 15*time.Minute, time.Hour)
	require.NoError(t, err)

	forged, _, err := other.IssueAccessToken("user-1")
	require.NoError(t, err)

	_, err = issuer.Verify(forged, PurposeAccess)
	assert.ErrorIs(t, err, model.ErrTokenInvalid)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	shortLived, err := NewIssuer(testSecret, time.Nanosecond, time.Nanosecond)
	require.NoError(t, err)

	signed, _, err := shortLived.IssueAccessToken("user-1")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = shortLived.Verify(signed, PurposeAccess)
	assert.ErrorIs(t, err, model.ErrTokenInvalid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := newTestIssuer(t)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := issuer.Verify(input, PurposeAccess)
		assert.ErrorIs(t, err, model.ErrTokenInvalid, "input %q", input)
	}
}
