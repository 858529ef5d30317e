package repository

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_ToggleRemovesExistingLike(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectExec(`DELETE FROM likes WHERE video_id = \$1`).
		WithArgs("video-1", "user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	repo := NewLikeRepository(mock)
	liked, err := repo.ToggleVideoLike(context.Background(), "video-1", "user-1")

	require.NoError(t, err)
	assert.False(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_ToggleCreatesLikeWhenAbsent(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectExec(`DELETE FROM likes WHERE video_id = \$1`).
		WithArgs("video-1", "user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO likes`).
		WithArgs(pgxmock.AnyArg(), "video-1", "user-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewLikeRepository(mock)
	liked, err := repo.ToggleVideoLike(context.Background(), "video-1", "user-1")

	require.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_ToggleConvergesWhenInsertRaces(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectExec(`DELETE FROM likes WHERE tweet_id = \$1`).
		WithArgs("tweet-1", "user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	// Concurrent toggle inserted first; ON CONFLICT DO NOTHING swallows
	// the duplicate and the like exists either way.
	mock.ExpectExec(`INSERT INTO likes`).
		WithArgs(pgxmock.AnyArg(), "tweet-1", "user-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	repo := NewLikeRepository(mock)
	liked, err := repo.ToggleTweetLike(context.Background(), "tweet-1", "user-1")

	require.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_ListLikedVideosHidesUnpublished(t *testing.T) {
	mock := newMockPool(t)
	// A like outlives un-publishing, but the video stays hidden from
	// the list until its owner republishes it.
	mock.ExpectQuery(`AND \(v\.is_published OR v\.owner_id = l\.liked_by\)`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(videoRowColumns()))

	repo := NewLikeRepository(mock)
	videos, err := repo.ListLikedVideos(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Empty(t, videos)
	assert.NoError(t, mock.ExpectationsWereMet())
}
