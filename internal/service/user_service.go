package service

import (
	"context"

	"vidstream/internal/model"
	"vidstream/internal/pagination"
)

type UserProfileStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	GetChannelProfile(ctx context.Context, username string, viewerID string) (model.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID string, p pagination.Params) ([]model.Video, int, error)
}

type UserService struct {
	users  UserProfileStore
	signer ObjectSigner
}

func NewUserService(users UserProfileStore, signer ObjectSigner) *UserService {
	return &UserService{users: users, signer: signer}
}

func (s *UserService) CurrentUser(ctx context.Context, userID string) (model.User, error) {
	return s.users.FindByID(ctx, userID)
}

// ChannelProfile is the public channel page: profile plus subscription
// counts relative to the viewer. viewerID may be empty.
func (s *UserService) ChannelProfile(ctx context.Context, username string, viewerID string) (model.ChannelProfile, error) {
	return s.users.GetChannelProfile(ctx, username, viewerID)
}

// WatchHistory pages through the caller's viewed videos, most recent
// first. Playback URLs are signed on the way out.
func (s *UserService) WatchHistory(ctx context.Context, userID string, p pagination.Params) (pagination.Page, error) {
	videos, total, err := s.users.GetWatchHistory(ctx, userID, p)
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
