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

type TweetRepository struct {
	db Querier
}

func NewTweetRepository(db Querier) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Create(ctx context.Context, t model.Tweet) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO tweets (id, owner_id, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.OwnerID, t.Content, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create tweet: %w", err)
	}
	return nil
}

func (r *TweetRepository) FindByID(ctx context.Context, id string) (model.Tweet, error) {
	var t model.Tweet
	err := r.db.QueryRow(ctx,
		`SELECT t.id, t.owner_id, t.content, t.created_at, t.updated_at,
		        o.id, o.username, o.fullname, o.avatar
		 FROM tweets t JOIN users o ON o.id = t.owner_id
		 WHERE t.id = $1`, id).
		Scan(&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt,
			&t.Owner.ID, &t.Owner.Username, &t.Owner.Fullname, &t.Owner.Avatar)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Tweet{}, model.ErrTweetNotFound
	}
	if err != nil {
		return model.Tweet{}, fmt.Errorf("find tweet by id: %w", err)
	}
	return t, nil
}

func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID string, p pagination.Params) ([]model.Tweet, int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM tweets WHERE owner_id = $1`, ownerID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count tweets: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT t.id, t.owner_id, t.content, t.created_at, t.updated_at,
		        o.id, o.username, o.fullname, o.avatar
		 FROM tweets t JOIN users o ON o.id = t.owner_id
		 WHERE t.owner_id = $1
		 `+orderByQualified(p, "t")+`
		 LIMIT $2 OFFSET $3`,
		ownerID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list tweets: %w", err)
	}
	defer rows.Close()

	tweets := make([]model.Tweet, 0)
	for rows.Next() {
		var t model.Tweet
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt,
			&t.Owner.ID, &t.Owner.Username, &t.Owner.Fullname, &t.Owner.Avatar); err != nil {
			return nil, 0, fmt.Errorf("scan tweet: %w", err)
		}
		tweets = append(tweets, t)
	}
	return tweets, total, rows.Err()
}

func (r *TweetRepository) UpdateContent(ctx context.Context, id string, content string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tweets SET content = $2, updated_at = $3 WHERE id = $1`,
		id, content, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update tweet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTweetNotFound
	}
	return nil
}

func (r *TweetRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tweet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTweetNotFound
	}
	return nil
}
