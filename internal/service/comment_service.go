package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"vidstream/internal/model"
	"vidstream/internal/pagination"
)

const maxCommentLength = 2000

type CommentStore interface {
	Create(ctx context.Context, c model.Comment) error
	FindByID(ctx context.Context, id string) (model.Comment, error)
	ListByVideo(ctx context.Context, videoID string, p pagination.Params) ([]model.Comment, int, error)
	UpdateContent(ctx context.Context, id string, content string) error
	Delete(ctx context.Context, id string) error
}

// videoFinder is the slice of the video store the comment and like
// services need: resolve the target and check draft visibility.
type videoFinder interface {
	FindByID(ctx context.Context, id string) (model.Video, error)
}

type CommentService struct {
	comments CommentStore
	videos   videoFinder
}

func NewCommentService(comments CommentStore, videos videoFinder) *CommentService {
	return &CommentService{comments: comments, videos: videos}
}

func (s *CommentService) Add(ctx context.Context, principalID string, videoID string, content string) (model.Comment, error) {
	content, err := validateContent(content)
	if err != nil {
		return model.Comment{}, err
	}

	video, err := s.videos.FindByID(ctx, videoID)
	if err := ensureVideoViewable(video, principalID, err); err != nil {
		return model.Comment{}, err
	}

	now := time.Now().UTC()
	comment := model.Comment{
		ID:        uuid.NewString(),
		VideoID:   video.ID,
		OwnerID:   principalID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}

func (s *CommentService) ListByVideo(ctx context.Context, viewerID string, videoID string, p pagination.Params) (pagination.Page, error) {
	video, err := s.videos.FindByID(ctx, videoID)
	if err := ensureVideoViewable(video, viewerID, err); err != nil {
		return pagination.Page{}, err
	}

	comments, total, err := s.comments.ListByVideo(ctx, video.ID, p)
	if err != nil {
		return pagination.Page{}, err
	}
	return pagination.Page{Items: comments, Meta: pagination.NewMeta(p.Page, p.Limit, total)}, nil
}

// Update rewrites a comment's content; comment author only.
func (s *CommentService) Update(ctx context.Context, principalID string, commentID string, content string) (model.Comment, error) {
	content, err := validateContent(content)
	if err != nil {
		return model.Comment{}, err
	}

	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return model.Comment{}, err
	}
	if err := authorizeOwner(principalID, comment.OwnerID); err != nil {
		return model.Comment{}, err
	}

	if err := s.comments.UpdateContent(ctx, comment.ID, content); err != nil {
		return model.Comment{}, err
	}
	comment.Content = content
	return comment, nil
}

// Delete removes a comment. The comment author may always delete it;
// so may the owner of the video it sits on.
func (s *CommentService) Delete(ctx context.Context, principalID string, commentID string) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}

	if authorizeOwner(principalID, comment.OwnerID) != nil {
		video, err := s.videos.FindByID(ctx, comment.VideoID)
		if err != nil {
			return err
		}
		if err := authorizeOwner(principalID, video.OwnerID); err != nil {
			return err
		}
	}

	return s.comments.Delete(ctx, comment.ID)
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("%w: content is required", model.ErrInvalidInput)
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return "", fmt.Errorf("%w: content exceeds %d characters", model.ErrInvalidInput, maxCommentLength)
	}
	return content, nil
}
