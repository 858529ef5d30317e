package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"vidstream/internal/model"
)

type LikeRepository struct {
	db Querier
}

func NewLikeRepository(db Querier) *LikeRepository {
	return &LikeRepository{db: db}
}

// toggle removes an existing like if present, otherwise inserts one.
// Each statement is individually atomic and the insert is guarded by
// the partial unique index, so concurrent duplicate toggles converge
// instead of racing a read-then-write.
func (r *LikeRepository) toggle(ctx context.Context, column string, targetID string, userID string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM likes WHERE `+column+` = $1 AND liked_by = $2`,
		targetID, userID)
	if err != nil {
		return false, fmt.Errorf("remove like: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	tag, err = r.db.Exec(ctx,
		`INSERT INTO likes (id, `+column+`, liked_by) VALUES ($1, $2, $3)
		 ON CONFLICT DO NOTHING`,
		uuid.NewString(), targetID, userID)
	if err != nil {
		return false, fmt.Errorf("create like: %w", err)
	}
	// RowsAffected 0 means a concurrent toggle inserted first; either
	// way a like now exists.
	return true, nil
}

func (r *LikeRepository) ToggleVideoLike(ctx context.Context, videoID string, userID string) (bool, error) {
	return r.toggle(ctx, "video_id", videoID, userID)
}

func (r *LikeRepository) ToggleCommentLike(ctx context.Context, commentID string, userID string) (bool, error) {
	return r.toggle(ctx, "comment_id", commentID, userID)
}

func (r *LikeRepository) ToggleTweetLike(ctx context.Context, tweetID string, userID string) (bool, error) {
	return r.toggle(ctx, "tweet_id", tweetID, userID)
}

// ListLikedVideos returns the videos a user has liked, newest like
// first, owner profile joined. A like survives un-publishing, but the
// video itself stays hidden until the owner republishes it.
func (r *LikeRepository) ListLikedVideos(ctx context.Context, userID string) ([]model.Video, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+videoColumns+`
		 FROM likes l
		 JOIN videos v ON v.id = l.video_id
		 JOIN users o ON o.id = v.owner_id
		 WHERE l.liked_by = $1 AND l.video_id IS NOT NULL
		   AND (v.is_published OR v.owner_id = l.liked_by)
		 ORDER BY l.created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list liked videos: %w", err)
	}
	defer rows.Close()

	return collectVideos(rows)
}
