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

type CommentRepository struct {
	db Querier
}

func NewCommentRepository(db Querier) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c model.Comment) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO comments (id, video_id, owner_id, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.VideoID, c.OwnerID, c.Content, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (model.Comment, error) {
	var c model.Comment
	err := r.db.QueryRow(ctx,
		`SELECT c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at,
		        o.id, o.username, o.fullname, o.avatar
		 FROM comments c JOIN users o ON o.id = c.owner_id
		 WHERE c.id = $1`, id).
		Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&c.Owner.ID, &c.Owner.Username, &c.Owner.Fullname, &c.Owner.Avatar)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Comment{}, model.ErrCommentNotFound
	}
	if err != nil {
		return model.Comment{}, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

func (r *CommentRepository) ListByVideo(ctx context.Context, videoID string, p pagination.Params) ([]model.Comment, int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE video_id = $1`, videoID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at,
		        o.id, o.username, o.fullname, o.avatar
		 FROM comments c JOIN users o ON o.id = c.owner_id
		 WHERE c.video_id = $1
		 `+orderByQualified(p, "c")+`
		 LIMIT $2 OFFSET $3`,
		videoID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&c.Owner.ID, &c.Owner.Username, &c.Owner.Fullname, &c.Owner.Avatar); err != nil {
			return nil, 0, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, total, rows.Err()
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id string, content string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE comments SET content = $2, updated_at = $3 WHERE id = $1`,
		id, content, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}
