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

const maxTweetLength = 280

type TweetStore interface {
	Create(ctx context.Context, t model.Tweet) error
	FindByID(ctx context.Context, id string) (model.Tweet, error)
	ListByOwner(ctx context.Context, ownerID string, p pagination.Params) ([]model.Tweet, int, error)
	UpdateContent(ctx context.Context, id string, content string) error
	Delete(ctx context.Context, id string) error
}

type TweetService struct {
	tweets TweetStore
	users  userFinder
}

func NewTweetService(tweets TweetStore, users userFinder) *TweetService {
	return &TweetService{tweets: tweets, users: users}
}

func (s *TweetService) Create(ctx context.Context, principalID string, content string) (model.Tweet, error) {
	content, err := validateTweetContent(content)
	if err != nil {
		return model.Tweet{}, err
	}

	now := time.Now().UTC()
	tweet := model.Tweet{
		ID:        uuid.NewString(),
		OwnerID:   principalID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.tweets.Create(ctx, tweet); err != nil {
		return model.Tweet{}, err
	}
	return tweet, nil
}

func (s *TweetService) ListByUser(ctx context.Context, userID string, p pagination.Params) (pagination.Page, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return pagination.Page{}, err
	}

	tweets, total, err := s.tweets.ListByOwner(ctx, userID, p)
	if err != nil {
		return pagination.Page{}, err
	}
	return pagination.Page{Items: tweets, Meta: pagination.NewMeta(p.Page, p.Limit, total)}, nil
}

func (s *TweetService) Update(ctx context.Context, principalID string, tweetID string, content string) (model.Tweet, error) {
	content, err := validateTweetContent(content)
	if err != nil {
		return model.Tweet{}, err
	}

	tweet, err := s.tweets.FindByID(ctx, tweetID)
	if err != nil {
		return model.Tweet{}, err
	}
	if err := authorizeOwner(principalID, tweet.OwnerID); err != nil {
		return model.Tweet{}, err
	}

	if err := s.tweets.UpdateContent(ctx, tweet.ID, content); err != nil {
		return model.Tweet{}, err
	}
	tweet.Content = content
	return tweet, nil
}

func (s *TweetService) Delete(ctx context.Context, principalID string, tweetID string) error {
	tweet, err := s.tweets.FindByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(principalID, tweet.OwnerID); err != nil {
		return err
	}
	return s.tweets.Delete(ctx, tweet.ID)
}

func validateTweetContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", fmt.Errorf("%w: content is required", model.ErrInvalidInput)
	}
	// The limit is characters, not bytes; multibyte text counts by rune.
	if utf8.RuneCountInString(content) > maxTweetLength {
		return "", fmt.Errorf("%w: content exceeds %d characters", model.ErrInvalidInput, maxTweetLength)
	}
	return content, nil
}
