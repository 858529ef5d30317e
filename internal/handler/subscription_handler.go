package handler

import (
	"net/http"

	"vidstream/internal/pagination"
	"vidstream/internal/service"
)

type SubscriptionHandler struct {
	subscriptions *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptions *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	channelID, err := parseID(r, "channelId")
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.subscriptions.Toggle(r.Context(), principalID(r), channelID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, "subscription toggled")
}

func (h *SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := parseID(r, "channelId")
	if err != nil {
		writeError(w, err)
		return
	}

	p := pagination.Parse(r.URL.Query())
	page, err := h.subscriptions.Subscribers(r.Context(), channelID, p)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, page, "subscribers")
}

func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberID, err := parseID(r, "subscriberId")
	if err != nil {
		writeError(w, err)
		return
	}

	p := pagination.Parse(r.URL.Query())
	page, err := h.subscriptions.SubscribedChannels(r.Context(), subscriberID, p)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, page, "subscribed channels")
}
