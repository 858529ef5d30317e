package service

import (
	"context"
	"errors"
	"fmt"

	"vidstream/internal/model"
	"vidstream/internal/pagination"
)

type SubscriptionStore interface {
	Toggle(ctx context.Context, subscriberID string, channelID string) (bool, error)
	ListSubscribers(ctx context.Context, channelID string, p pagination.Params) ([]model.UserSummary, int, error)
	ListSubscribedChannels(ctx context.Context, subscriberID string, p pagination.Params) ([]model.UserSummary, int, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id string) (model.User, error)
}

type SubscriptionService struct {
	subscriptions SubscriptionStore
	users         userFinder
}

func NewSubscriptionService(subscriptions SubscriptionStore, users userFinder) *SubscriptionService {
	return &SubscriptionService{subscriptions: subscriptions, users: users}
}

// Toggle flips the caller's subscription to a channel. Subscribing to
// oneself is rejected.
func (s *SubscriptionService) Toggle(ctx context.Context, principalID string, channelID string) (model.ToggleResult, error) {
	if principalID == channelID {
		return model.ToggleResult{}, fmt.Errorf("%w: cannot subscribe to your own channel", model.ErrInvalidInput)
	}

	if _, err := s.users.FindByID(ctx, channelID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.ToggleResult{}, model.ErrUserNotFound
		}
		return model.ToggleResult{}, err
	}

	active, err := s.subscriptions.Toggle(ctx, principalID, channelID)
	if err != nil {
		return model.ToggleResult{}, err
	}
	return model.ToggleResult{Active: active}, nil
}

// Subscribers pages through the users subscribed to a channel.
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID string, p pagination.Params) (pagination.Page, error) {
	if _, err := s.users.FindByID(ctx, channelID); err != nil {
		return pagination.Page{}, err
	}

	subscribers, total, err := s.subscriptions.ListSubscribers(ctx, channelID, p)
	if err != nil {
		return pagination.Page{}, err
	}
	return pagination.Page{Items: subscribers, Meta: pagination.NewMeta(p.Page, p.Limit, total)}, nil
}

// SubscribedChannels pages through the channels a user subscribes to.
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID string, p pagination.Params) (pagination.Page, error) {
	if _, err := s.users.FindByID(ctx, subscriberID); err != nil {
		return pagination.Page{}, err
	}

	channels, total, err := s.subscriptions.ListSubscribedChannels(ctx, subscriberID, p)
	if err != nil {
		return pagination.Page{}, err
	}
	return pagination.Page{Items: channels, Meta: pagination.NewMeta(p.Page, p.Limit, total)}, nil
}
