package repository

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidstream/internal/model"
	"vidstream/internal/pagination"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestUserRepository_RotateRefreshTokenHash(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantWon   bool
		wantErr   bool
	}{
		{
			name: "rotation wins when stored hash matches",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE users SET refresh_token_hash = \$3`).
					WithArgs("user-1", "old-hash", "new-hash", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			wantWon: true,
		},
		{
			name: "rotation loses when another rotation got there first",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE users SET refresh_token_hash = \$3`).
					WithArgs("user-1", "old-hash", "new-hash", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			wantWon: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			tt.setupMock(mock)

			repo := NewUserRepository(mock)
			won, err := repo.RotateRefreshTokenHash(context.Background(), "user-1", "old-hash", "new-hash")

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantWon, won)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_ClearRefreshTokenHashIsIdempotent(t *testing.T) {
	mock := newMockPool(t)
	// No rows touched is still success: the user was already logged out.
	mock.ExpectExec(`UPDATE users SET refresh_token_hash = NULL`).
		WithArgs("user-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewUserRepository(mock)
	err := repo.ClearRefreshTokenHash(context.Background(), "user-1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePasswordRevokesRefreshToken(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectExec(`UPDATE users SET password_hash = \$2, refresh_token_hash = NULL`).
		WithArgs("user-1", "new-hash", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewUserRepository(mock)
	err := repo.UpdatePassword(context.Background(), "user-1", "new-hash")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByIdentifierNotFound(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(`FROM users WHERE lower\(username\)`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	repo := NewUserRepository(mock)
	_, err := repo.FindByIdentifier(context.Background(), "ghost")

	assert.ErrorIs(t, err, model.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetChannelProfileAnonymousViewer(t *testing.T) {
	mock := newMockPool(t)
	// The subscription probe compares through a text cast so the empty
	// viewer id of an anonymous request binds cleanly instead of being
	// rejected as malformed uuid input.
	mock.ExpectQuery(`AND \$2 <> '' AND s\.subscriber_id::text = \$2`).
		WithArgs("channel", "").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "username", "fullname", "avatar", "cover_image",
			"subscriber_count", "subscribed_to_count", "is_subscribed",
		}).AddRow("chan-1", "channel", "Channel One", "", "", 3, 1, false))

	repo := NewUserRepository(mock)
	profile, err := repo.GetChannelProfile(context.Background(), "channel", "")

	require.NoError(t, err)
	assert.Equal(t, 3, profile.SubscriberCount)
	assert.False(t, profile.IsSubscribed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetWatchHistoryHidesUnpublished(t *testing.T) {
	mock := newMockPool(t)
	// Count and fetch run under the same published-or-own filter so the
	// pagination meta agrees with the rows returned.
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`WHERE w\.user_id = \$1 AND \(v\.is_published OR v\.owner_id = w\.user_id\)`).
		WithArgs("user-1", 10, 0).
		WillReturnRows(pgxmock.NewRows(videoRowColumns()))

	repo := NewUserRepository(mock)
	videos, total, err := repo.GetWatchHistory(context.Background(), "user-1", pagination.Params{
		Page: 1, Limit: 10, SortBy: "created_at", SortType: "desc",
	})

	require.NoError(t, err)
	assert.Empty(t, videos)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// videoRowColumns matches the projection of the video queries that
// join the owner profile.
func videoRowColumns() []string {
	return []string{
		"id", "owner_id", "title", "description", "video_key", "thumbnail_key",
		"duration", "views", "is_published", "created_at", "updated_at",
		"o_id", "o_username", "o_fullname", "o_avatar",
	}
}
