package service

import (
	"context"

	"vidstream/internal/model"
)

type LikeStore interface {
	ToggleVideoLike(ctx context.Context, videoID string, userID string) (bool, error)
	ToggleCommentLike(ctx context.Context, commentID string, userID string) (bool, error)
	ToggleTweetLike(ctx context.Context, tweetID string, userID string) (bool, error)
	ListLikedVideos(ctx context.Context, userID string) ([]model.Video, error)
}

type commentFinder interface {
	FindByID(ctx context.Context, id string) (model.Comment, error)
}

type tweetFinder interface {
	FindByID(ctx context.Context, id string) (model.Tweet, error)
}

// LikeService flips like edges. Each toggle resolves the target first
// so likes cannot attach to missing rows or invisible drafts.
type LikeService struct {
	likes    LikeStore
	videos   videoFinder
	comments commentFinder
	tweets   tweetFinder
	signer   ObjectSigner
}

func NewLikeService(likes LikeStore, videos videoFinder, comments commentFinder, tweets tweetFinder, signer ObjectSigner) *LikeService {
	return &LikeService{likes: likes, videos: videos, comments: comments, tweets: tweets, signer: signer}
}

func (s *LikeService) ToggleVideo(ctx context.Context, principalID string, videoID string) (model.ToggleResult, error) {
	video, err := s.videos.FindByID(ctx, videoID)
	if err := ensureVideoViewable(video, principalID, err); err != nil {
		return model.ToggleResult{}, err
	}

	active, err := s.likes.ToggleVideoLike(ctx, video.ID, principalID)
	if err != nil {
		return model.ToggleResult{}, err
	}
	return model.ToggleResult{Active: active}, nil
}

func (s *LikeService) ToggleComment(ctx context.Context, principalID string, commentID string) (model.ToggleResult, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return model.ToggleResult{}, err
	}

	active, err := s.likes.ToggleCommentLike(ctx, comment.ID, principalID)
	if err != nil {
		return model.ToggleResult{}, err
	}
	return model.ToggleResult{Active: active}, nil
}

func (s *LikeService) ToggleTweet(ctx context.Context, principalID string, tweetID string) (model.ToggleResult, error) {
	tweet, err := s.tweets.FindByID(ctx, tweetID)
	if err != nil {
		return model.ToggleResult{}, err
	}

	active, err := s.likes.ToggleTweetLike(ctx, tweet.ID, principalID)
	if err != nil {
		return model.ToggleResult{}, err
	}
	return model.ToggleResult{Active: active}, nil
}

// LikedVideos lists the caller's liked videos, newest like first.
func (s *LikeService) LikedVideos(ctx context.Context, principalID string) ([]model.Video, error) {
	videos, err := s.likes.ListLikedVideos(ctx, principalID)
	if err != nil {
		return nil, err
	}

	for i := range videos {
		if videos[i].VideoURL, err = s.signer.PresignDownload(ctx, videos[i].VideoKey); err != nil {
			return nil, err
		}
		if videos[i].ThumbnailURL, err = s.signer.PresignDownload(ctx, videos[i].ThumbnailKey); err != nil {
			return nil, err
		}
	}
	return videos, nil
}
