package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaylistRepository_FindByIDWithVideosScopesDraftsToViewer(t *testing.T) {
	mock := newMockPool(t)
	now := time.Now()
	mock.ExpectQuery(`FROM playlists p WHERE p\.id = \$1`).
		WithArgs("playlist-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "owner_id", "name", "description", "created_at", "updated_at", "video_count",
		}).AddRow("playlist-1", "owner-1", "Mix", "", now, now, 2))
	// Anonymous viewer: draft entries are filtered out in SQL, with the
	// empty viewer id bound through a text cast, and the reported count
	// follows the rows this viewer can actually see.
	mock.ExpectQuery(`AND \(v\.is_published OR \(\$2 <> '' AND v\.owner_id::text = \$2\)\)`).
		WithArgs("playlist-1", "").
		WillReturnRows(pgxmock.NewRows(videoRowColumns()))

	repo := NewPlaylistRepository(mock)
	playlist, err := repo.FindByIDWithVideos(context.Background(), "playlist-1", "")

	require.NoError(t, err)
	assert.Empty(t, playlist.Videos)
	assert.Zero(t, playlist.VideoCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
