package service

import (
	"context"

	"vidstream/internal/model"
	"vidstream/internal/pagination"
)

type DashboardStore interface {
	GetChannelStats(ctx context.Context, channelID string) (model.ChannelStats, error)
	ListChannelVideos(ctx context.Context, channelID string, p pagination.Params) ([]model.Video, int, error)
}

// DashboardService serves the owner-facing channel dashboard: stats
// and the full video list, drafts included. Routes mount it behind
// authentication and scope everything to the caller's own channel, so
// no ownership check is needed beyond the principal itself.
type DashboardService struct {
	dashboard DashboardStore
	signer    ObjectSigner
}

func NewDashboardService(dashboard DashboardStore, signer ObjectSigner) *DashboardService {
	return &DashboardService{dashboard: dashboard, signer: signer}
}

func (s *DashboardService) Stats(ctx context.Context, principalID string) (model.ChannelStats, error) {
	return s.dashboard.GetChannelStats(ctx, principalID)
}

func (s *DashboardService) Videos(ctx context.Context, principalID string, p pagination.Params) (pagination.Page, error) {
	videos, total, err := s.dashboard.ListChannelVideos(ctx, principalID, p)
	if err != nil {
		return pagination.Page{}, err
	}

	for i := range videos {
		if videos[i].VideoURL, err = s.signer.PresignDownload(ctx, videos[i].VideoKey); err != nil {
			return pagination.Page{}, err
		}
		if videos[i].ThumbnailURL, err = s.signer.PresignDownload(ctx, videos[i].ThumbnailKey); err != nil {
			return pagination.Page{}, err
		}
	}

	return pagination.Page{Items: videos, Meta: pagination.NewMeta(p.Page, p.Limit, total)}, nil
}
