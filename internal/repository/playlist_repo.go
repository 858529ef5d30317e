package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"vidstream/internal/model"
)

type PlaylistRepository struct {
	db Querier
}

func NewPlaylistRepository(db Querier) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) Create(ctx context.Context, p model.Playlist) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO playlists (id, owner_id, name, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.OwnerID, p.Name, p.Description, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create playlist: %w", err)
	}
	return nil
}

func (r *PlaylistRepository) FindByID(ctx context.Context, id string) (model.Playlist, error) {
	var p model.Playlist
	err := r.db.QueryRow(ctx,
		`SELECT p.id, p.owner_id, p.name, p.description, p.created_at, p.updated_at,
		        (SELECT COUNT(*) FROM playlist_videos pv WHERE pv.playlist_id = p.id)
		 FROM playlists p WHERE p.id = $1`, id).
		Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt, &p.VideoCount)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Playlist{}, model.ErrPlaylistNotFound
	}
	if err != nil {
		return model.Playlist{}, fmt.Errorf("find playlist by id: %w", err)
	}
	return p, nil
}

// FindByIDWithVideos loads the playlist and its videos in insertion
// order, owner profiles joined. Drafts are only visible to their
// owner; viewerID may be empty for anonymous viewers, hence the text
// cast instead of binding '' against the uuid column.
func (r *PlaylistRepository) FindByIDWithVideos(ctx context.Context, id string, viewerID string) (model.Playlist, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return model.Playlist{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+videoColumns+`
		 FROM playlist_videos pv
		 JOIN videos v ON v.id = pv.video_id
		 JOIN users o ON o.id = v.owner_id
		 WHERE pv.playlist_id = $1
		   AND (v.is_published OR ($2 <> '' AND v.owner_id::text = $2))
		 ORDER BY pv.added_at ASC`, id, viewerID)
	if err != nil {
		return model.Playlist{}, fmt.Errorf("list playlist videos: %w", err)
	}
	defer rows.Close()

	p.Videos, err = collectVideos(rows)
	if err != nil {
		return model.Playlist{}, err
	}
	// Keep the count consistent with what this viewer can actually see.
	p.VideoCount = len(p.Videos)
	return p, nil
}

func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Playlist, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.owner_id, p.name, p.description, p.created_at, p.updated_at,
		        (SELECT COUNT(*) FROM playlist_videos pv WHERE pv.playlist_id = p.id)
		 FROM playlists p
		 WHERE p.owner_id = $1
		 ORDER BY p.created_at DESC, p.id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]model.Playlist, 0)
	for rows.Next() {
		var p model.Playlist
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt, &p.VideoCount); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

func (r *PlaylistRepository) Update(ctx context.Context, p model.Playlist) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE playlists SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		p.ID, p.Name, p.Description, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update playlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPlaylistNotFound
	}
	return nil
}

func (r *PlaylistRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPlaylistNotFound
	}
	return nil
}

// AddVideo is idempotent: re-adding a video already in the playlist is
// a no-op.
func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID string, videoID string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO playlist_videos (playlist_id, video_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		playlistID, videoID)
	if err != nil {
		return fmt.Errorf("add video to playlist: %w", err)
	}
	return nil
}

func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID string, videoID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`,
		playlistID, videoID)
	if err != nil {
		return fmt.Errorf("remove video from playlist: %w", err)
	}
	return nil
}
