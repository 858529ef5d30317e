package repository

import (
	"context"
	"fmt"

	"vidstream/internal/model"
	"vidstream/internal/pagination"
)

// DashboardRepository answers the channel-statistics fan-out queries
// that aggregate across videos, subscriptions, and likes.
type DashboardRepository struct {
	db Querier
}

func NewDashboardRepository(db Querier) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// GetChannelStats runs the four aggregates as one statement so the
// numbers come from a single snapshot of the store.
func (r *DashboardRepository) GetChannelStats(ctx context.Context, channelID string) (model.ChannelStats, error) {
	var stats model.ChannelStats
	err := r.db.QueryRow(ctx,
		`SELECT
		    (SELECT COUNT(*) FROM videos WHERE owner_id = $1),
		    (SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = $1),
		    (SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1),
		    (SELECT COUNT(*) FROM likes l JOIN videos v ON v.id = l.video_id WHERE v.owner_id = $1)`,
		channelID).
		Scan(&stats.TotalVideos, &stats.TotalViews, &stats.TotalSubscribers, &stats.TotalLikes)
	if err != nil {
		return model.ChannelStats{}, fmt.Errorf("get channel stats: %w", err)
	}
	return stats, nil
}

// ListChannelVideos lists every video of the channel, drafts included;
// this is the owner-facing dashboard view.
func (r *DashboardRepository) ListChannelVideos(ctx context.Context, channelID string, p pagination.Params) ([]model.Video, int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM videos WHERE owner_id = $1`, channelID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count channel videos: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+videoColumns+`
		 FROM videos v JOIN users o ON o.id = v.owner_id
		 WHERE v.owner_id = $1
		 `+orderByQualified(p, "v")+`
		 LIMIT $2 OFFSET $3`,
		channelID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list channel videos: %w", err)
	}
	defer rows.Close()

	videos, err := collectVideos(rows)
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}
