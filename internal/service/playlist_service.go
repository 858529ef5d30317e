package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vidstream/internal/model"
)

type PlaylistStore interface {
	Create(ctx context.Context, p model.Playlist) error
	FindByID(ctx context.Context, id string) (model.Playlist, error)
	FindByIDWithVideos(ctx context.Context, id string, viewerID string) (model.Playlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Playlist, error)
	Update(ctx context.Context, p model.Playlist) error
	Delete(ctx context.Context, id string) error
	AddVideo(ctx context.Context, playlistID string, videoID string) error
	RemoveVideo(ctx context.Context, playlistID string, videoID string) error
}

type PlaylistService struct {
	playlists PlaylistStore
	videos    videoFinder
	signer    ObjectSigner
}

func NewPlaylistService(playlists PlaylistStore, videos videoFinder, signer ObjectSigner) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos, signer: signer}
}

func (s *PlaylistService) Create(ctx context.Context, ownerID string, req model.PlaylistRequest) (model.Playlist, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Playlist{}, fmt.Errorf("%w: name is required", model.ErrInvalidInput)
	}

	now := time.Now().UTC()
	playlist := model.Playlist{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.playlists.Create(ctx, playlist); err != nil {
		return model.Playlist{}, err
	}
	return playlist, nil
}

// Get loads a playlist with its videos in insertion order, playback
// URLs signed. Drafts inside the playlist are visible to their owner
// only; viewerID is empty for anonymous viewers.
func (s *PlaylistService) Get(ctx context.Context, viewerID string, playlistID string) (model.Playlist, error) {
	playlist, err := s.playlists.FindByIDWithVideos(ctx, playlistID, viewerID)
	if err != nil {
		return model.Playlist{}, err
	}

	for i := range playlist.Videos {
		v := &playlist.Videos[i]
		if v.VideoURL, err = s.signer.PresignDownload(ctx, v.VideoKey); err != nil {
			return model.Playlist{}, err
		}
		if v.ThumbnailURL, err = s.signer.PresignDownload(ctx, v.ThumbnailKey); err != nil {
			return model.Playlist{}, err
		}
	}
	return playlist, nil
}

func (s *PlaylistService) ListByOwner(ctx context.Context, ownerID string) ([]model.Playlist, error) {
	return s.playlists.ListByOwner(ctx, ownerID)
}

func (s *PlaylistService) Update(ctx context.Context, principalID string, playlistID string, req model.PlaylistRequest) (model.Playlist, error) {
	playlist, err := s.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return model.Playlist{}, err
	}
	if err := authorizeOwner(principalID, playlist.OwnerID); err != nil {
		return model.Playlist{}, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		playlist.Name = name
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		playlist.Description = desc
	}

	if err := s.playlists.Update(ctx, playlist); err != nil {
		return model.Playlist{}, err
	}
	return playlist, nil
}

func (s *PlaylistService) Delete(ctx context.Context, principalID string, playlistID string) error {
	playlist, err := s.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(principalID, playlist.OwnerID); err != nil {
		return err
	}
	return s.playlists.Delete(ctx, playlist.ID)
}

// AddVideo appends a video to the playlist; playlist owner only.
// Idempotent for videos already present.
func (s *PlaylistService) AddVideo(ctx context.Context, principalID string, playlistID string, videoID string) (model.Playlist, error) {
	playlist, err := s.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return model.Playlist{}, err
	}
	if err := authorizeOwner(principalID, playlist.OwnerID); err != nil {
		return model.Playlist{}, err
	}

	video, err := s.videos.FindByID(ctx, videoID)
	if err := ensureVideoViewable(video, principalID, err); err != nil {
		return model.Playlist{}, err
	}

	if err := s.playlists.AddVideo(ctx, playlist.ID, video.ID); err != nil {
		return model.Playlist{}, err
	}
	return s.playlists.FindByID(ctx, playlist.ID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, principalID string, playlistID string, videoID string) (model.Playlist, error) {
	playlist, err := s.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return model.Playlist{}, err
	}
	if err := authorizeOwner(principalID, playlist.OwnerID); err != nil {
		return model.Playlist{}, err
	}

	if err := s.playlists.RemoveVideo(ctx, playlist.ID, videoID); err != nil {
		return model.Playlist{}, err
	}
	return s.playlists.FindByID(ctx, playlist.ID)
}
