package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"vidstream/internal/model"
	"vidstream/internal/objectstore"
	"vidstream/internal/pagination"
	"vidstream/internal/repository"
)

// VideoSortable lists the columns a video listing may be ordered by.
var VideoSortable = []string{"created_at", "views", "duration", "title"}

type VideoStore interface {
	Create(ctx context.Context, v model.Video) error
	FindByID(ctx context.Context, id string) (model.Video, error)
	List(ctx context.Context, filter repository.ListFilter, p pagination.Params) ([]model.Video, int, error)
	Update(ctx context.Context, v model.Video) error
	SetPublished(ctx context.Context, id string, published bool) error
	Delete(ctx context.Context, id string) error
	RecordView(ctx context.Context, videoID string, viewerID string) (bool, error)
}

// ObjectSigner presigns direct-to-storage transfer URLs. Media bytes
// never pass through this service.
type ObjectSigner interface {
	PresignUpload(ctx context.Context, key string) (string, error)
	PresignDownload(ctx context.Context, key string) (string, error)
}

type VideoService struct {
	videos VideoStore
	signer ObjectSigner
}

func NewVideoService(videos VideoStore, signer ObjectSigner) *VideoService {
	return &VideoService{videos: videos, signer: signer}
}

// Publish creates the video record as an unpublished draft and hands
// back presigned PUT URLs for the media bytes. The owner flips it
// public with TogglePublish once the uploads land.
func (s *VideoService) Publish(ctx context.Context, ownerID string, req model.PublishVideoRequest) (model.PublishedVideo, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.PublishedVideo{}, fmt.Errorf("%w: title is required", model.ErrInvalidInput)
	}
	if req.Duration < 0 {
		return model.PublishedVideo{}, fmt.Errorf("%w: duration cannot be negative", model.ErrInvalidInput)
	}

	now := time.Now().UTC()
	video := model.Video{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Title:        title,
		Description:  strings.TrimSpace(req.Description),
		VideoKey:     objectstore.NewKey("videos"),
		ThumbnailKey: objectstore.NewKey("thumbnails"),
		Duration:     req.Duration,
		IsPublished:  false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.videos.Create(ctx, video); err != nil {
		return model.PublishedVideo{}, err
	}

	videoUpload, err := s.signer.PresignUpload(ctx, video.VideoKey)
	if err != nil {
		return model.PublishedVideo{}, err
	}
	thumbUpload, err := s.signer.PresignUpload(ctx, video.ThumbnailKey)
	if err != nil {
		return model.PublishedVideo{}, err
	}

	return model.PublishedVideo{
		Video:              video,
		VideoUploadURL:     videoUpload,
		ThumbnailUploadURL: thumbUpload,
	}, nil
}

// Get loads a single video for a viewer. Drafts are visible only to
// their owner and are reported as not found to everyone else. An
// authenticated view of someone else's published video is counted,
// deduplicated per viewer.
func (s *VideoService) Get(ctx context.Context, viewerID string, videoID string) (model.Video, error) {
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return model.Video{}, err
	}

	if !video.IsPublished && video.OwnerID != viewerID {
		return model.Video{}, model.ErrVideoNotFound
	}

	if viewerID != "" && viewerID != video.OwnerID {
		counted, err := s.videos.RecordView(ctx, video.ID, viewerID)
		if err != nil {
			// The video itself loaded fine; losing one view count is not
			// worth failing the request over.
			slog.Warn("record view failed", "video_id", video.ID, "error", err)
		} else if counted {
			video.Views++
		}
	}

	if err := s.sign(ctx, &video); err != nil {
		return model.Video{}, err
	}
	return video, nil
}

// List returns a page of videos. Unauthenticated viewers and other
// users see published videos only; when the filter owner is the viewer
// themselves, their drafts are included.
func (s *VideoService) List(ctx context.Context, viewerID string, ownerID string, p pagination.Params) (pagination.Page, error) {
	filter := repository.ListFilter{OwnerID: ownerID}
	if viewerID != "" && viewerID == ownerID {
		filter.IncludeUnpublishedFor = viewerID
	}

	videos, total, err := s.videos.List(ctx, filter, p)
	if err != nil {
		return pagination.Page{}, err
	}

	for i := range videos {
		if err := s.sign(ctx, &videos[i]); err != nil {
			return pagination.Page{}, err
		}
	}

	return pagination.Page{Items: videos, Meta: pagination.NewMeta(p.Page, p.Limit, total)}, nil
}

// Update patches title and description. Only fields present in the
// request change; owner only.
func (s *VideoService) Update(ctx context.Context, principalID string, videoID string, req model.UpdateVideoRequest) (model.Video, error) {
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return model.Video{}, err
	}
	if err := authorizeOwner(principalID, video.OwnerID); err != nil {
		return model.Video{}, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return model.Video{}, fmt.Errorf("%w: title cannot be empty", model.ErrInvalidInput)
		}
		video.Title = title
	}
	if req.Description != nil {
		video.Description = strings.TrimSpace(*req.Description)
	}

	if err := s.videos.Update(ctx, video); err != nil {
		return model.Video{}, err
	}

	if err := s.sign(ctx, &video); err != nil {
		return model.Video{}, err
	}
	return video, nil
}

// TogglePublish flips draft/published; owner only.
func (s *VideoService) TogglePublish(ctx context.Context, principalID string, videoID string) (model.Video, error) {
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return model.Video{}, err
	}
	if err := authorizeOwner(principalID, video.OwnerID); err != nil {
		return model.Video{}, err
	}

	video.IsPublished = !video.IsPublished
	if err := s.videos.SetPublished(ctx, video.ID, video.IsPublished); err != nil {
		return model.Video{}, err
	}
	return video, nil
}

// Delete removes a video; owner only. Comments, likes, views, and
// playlist entries go with it via the schema's cascades.
func (s *VideoService) Delete(ctx context.Context, principalID string, videoID string) error {
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(principalID, video.OwnerID); err != nil {
		return err
	}
	return s.videos.Delete(ctx, video.ID)
}

// ensureVideoViewable reports ErrVideoNotFound for drafts the viewer
// does not own, so comment and like operations cannot leak drafts.
func ensureVideoViewable(video model.Video, viewerID string, err error) error {
	if err != nil {
		return err
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return model.ErrVideoNotFound
	}
	return nil
}

func (s *VideoService) sign(ctx context.Context, v *model.Video) error {
	var err error
	if v.VideoURL, err = s.signer.PresignDownload(ctx, v.VideoKey); err != nil {
		return fmt.Errorf("sign video url: %w", err)
	}
	if v.ThumbnailURL, err = s.signer.PresignDownload(ctx, v.ThumbnailKey); err != nil {
		return fmt.Errorf("sign thumbnail url: %w", err)
	}
	return nil
}
