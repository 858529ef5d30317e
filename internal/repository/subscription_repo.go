package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"vidstream/internal/model"
	"vidstream/internal/pagination"
)

type SubscriptionRepository struct {
	db Querier
}

func NewSubscriptionRepository(db Querier) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Toggle flips the subscription edge. Delete-then-insert, each
// statement atomic, the insert guarded by the unique constraint.
func (r *SubscriptionRepository) Toggle(ctx context.Context, subscriberID string, channelID string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`,
		subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("remove subscription: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO subscriptions (id, subscriber_id, channel_id) VALUES ($1, $2, $3)
		 ON CONFLICT DO NOTHING`,
		uuid.NewString(), subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("create subscription: %w", err)
	}
	return true, nil
}

// ListSubscribers returns the profiles of users subscribed to a
// channel. Fixed stage order: filter edges, join profile, project,
// order by subscription recency.
func (r *SubscriptionRepository) ListSubscribers(ctx context.Context, channelID string, p pagination.Params) ([]model.UserSummary, int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1`, channelID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count subscribers: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.username, u.fullname, u.avatar
		 FROM subscriptions s
		 JOIN users u ON u.id = s.subscriber_id
		 WHERE s.channel_id = $1
		 ORDER BY s.created_at DESC, s.id DESC
		 LIMIT $2 OFFSET $3`,
		channelID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	subscribers, err := collectUserSummaries(rows)
	if err != nil {
		return nil, 0, err
	}
	return subscribers, total, nil
}

// ListSubscribedChannels returns the channels a user subscribes to.
func (r *SubscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID string, p pagination.Params) ([]model.UserSummary, int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = $1`, subscriberID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count subscribed channels: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.username, u.fullname, u.avatar
		 FROM subscriptions s
		 JOIN users u ON u.id = s.channel_id
		 WHERE s.subscriber_id = $1
		 ORDER BY s.created_at DESC, s.id DESC
		 LIMIT $2 OFFSET $3`,
		subscriberID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list subscribed channels: %w", err)
	}
	defer rows.Close()

	channels, err := collectUserSummaries(rows)
	if err != nil {
		return nil, 0, err
	}
	return channels, total, nil
}

func collectUserSummaries(rows pgx.Rows) ([]model.UserSummary, error) {
	users := make([]model.UserSummary, 0)
	for rows.Next() {
		var u model.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.Fullname, &u.Avatar); err != nil {
			return nil, fmt.Errorf("scan user summary: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
