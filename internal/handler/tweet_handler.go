package handler

import (
	"encoding/json"
	"net/http"

	"vidstream/internal/model"
	"vidstream/internal/pagination"
	"vidstream/internal/service"
)

type TweetHandler struct {
	tweets *service.TweetService
}

func NewTweetHandler(tweets *service.TweetService) *TweetHandler {
	return &TweetHandler{tweets: tweets}
}

func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.TweetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, badRequest("invalid JSON body"))
		return
	}

	tweet, err := h.tweets.Create(r.Context(), principalID(r), payload.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, tweet, "tweet created")
}

func (h *TweetHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	p := pagination.Parse(r.URL.Query())
	page, err := h.tweets.ListByUser(r.Context(), userID, p)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, page, "tweets")
}

func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	tweetID, err := parseID(r, "tweetId")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.TweetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, badRequest("invalid JSON body"))
		return
	}

	tweet, err := h.tweets.Update(r.Context(), principalID(r), tweetID, payload.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, tweet, "tweet updated")
}

func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tweetID, err := parseID(r, "tweetId")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.tweets.Delete(r.Context(), principalID(r), tweetID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil, "tweet deleted")
}
