package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"vidstream/internal/model"
	"vidstream/internal/pagination"
)

type VideoRepository struct {
	db Querier
}

func NewVideoRepository(db Querier) *VideoRepository {
	return &VideoRepository{db: db}
}

const videoColumns = `v.id, v.owner_id, v.title, v.description, v.video_key, v.thumbnail_key,
	        v.duration, v.views, v.is_published, v.created_at, v.updated_at,
	        o.id, o.username, o.fullname, o.avatar`

func scanVideo(row pgx.Row) (model.Video, error) {
	var v model.Video
	err := row.Scan(&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.VideoKey, &v.ThumbnailKey,
		&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
		&v.Owner.ID, &v.Owner.Username, &v.Owner.Fullname, &v.Owner.Avatar)
	return v, err
}

func collectVideos(rows pgx.Rows) ([]model.Video, error) {
	videos := make([]model.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func (r *VideoRepository) Create(ctx context.Context, v model.Video) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO videos (id, owner_id, title, description, video_key, thumbnail_key, duration, is_published, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		v.ID, v.OwnerID, v.Title, v.Description, v.VideoKey, v.ThumbnailKey, v.Duration, v.IsPublished, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create video: %w", err)
	}
	return nil
}

func (r *VideoRepository) FindByID(ctx context.Context, id string) (model.Video, error) {
	v, err := scanVideo(r.db.QueryRow(ctx,
		`SELECT `+videoColumns+`
		 FROM videos v JOIN users o ON o.id = v.owner_id
		 WHERE v.id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Video{}, model.ErrVideoNotFound
	}
	if err != nil {
		return model.Video{}, fmt.Errorf("find video by id: %w", err)
	}
	return v, nil
}

// ListFilter scopes the video listing. When OwnerID is set and equals
// IncludeUnpublishedFor, the owner sees their drafts as well.
type ListFilter struct {
	OwnerID               string
	IncludeUnpublishedFor string
}

// List runs the two-phase bounded query: one count, one fetch, both
// under the same filter. Stage order is fixed: filter, join owner,
// order, page.
func (r *VideoRepository) List(ctx context.Context, filter ListFilter, p pagination.Params) ([]model.Video, int, error) {
	where := `WHERE (v.is_published OR ($3 <> '' AND v.owner_id::text = $3))
	   AND ($1 = '' OR v.owner_id::text = $1)
	   AND ($2 = '' OR v.title ILIKE '%' || $2 || '%' OR v.description ILIKE '%' || $2 || '%')`
	args := []any{filter.OwnerID, p.Query, filter.IncludeUnpublishedFor}

	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM videos v `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count videos: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+videoColumns+`
		 FROM videos v JOIN users o ON o.id = v.owner_id `+where+`
		 `+orderByQualified(p, "v")+`
		 LIMIT $4 OFFSET $5`,
		append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	videos, err := collectVideos(rows)
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *VideoRepository) Update(ctx context.Context, v model.Video) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE videos SET title = $2, description = $3, updated_at = $4 WHERE id = $1`,
		v.ID, v.Title, v.Description, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVideoNotFound
	}
	return nil
}

func (r *VideoRepository) SetPublished(ctx context.Context, id string, published bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE videos SET is_published = $2, updated_at = $3 WHERE id = $1`,
		id, published, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set published: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVideoNotFound
	}
	return nil
}

func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVideoNotFound
	}
	return nil
}

// RecordView counts a view at most once per (video, viewer) pair. The
// CTE makes the dedup check and the counter bump a single atomic
// statement. Returns true when the view was counted.
func (r *VideoRepository) RecordView(ctx context.Context, videoID string, viewerID string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`WITH ins AS (
		    INSERT INTO video_views (video_id, user_id) VALUES ($1, $2)
		    ON CONFLICT DO NOTHING
		    RETURNING 1
		 )
		 UPDATE videos SET views = views + 1
		 WHERE id = $1 AND EXISTS (SELECT 1 FROM ins)`,
		videoID, viewerID)
	if err != nil {
		return false, fmt.Errorf("record view: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// orderByQualified prefixes the sort column with a table alias so
// joined queries stay unambiguous.
func orderByQualified(p pagination.Params, alias string) string {
	direction := "DESC"
	if p.SortType == "asc" {
		direction = "ASC"
	}
	return "ORDER BY " + alias + "." + p.SortBy + " " + direction + ", " + alias + ".id " + direction
}
