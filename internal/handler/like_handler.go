package handler

import (
	"net/http"

	"vidstream/internal/service"
)

type LikeHandler struct {
	likes *service.LikeService
}

func NewLikeHandler(likes *service.LikeService) *LikeHandler {
	return &LikeHandler{likes: likes}
}

func (h *LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseID(r, "videoId")
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.likes.ToggleVideo(r.Context(), principalID(r), videoID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, "video like toggled")
}

func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := parseID(r, "commentId")
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.likes.ToggleComment(r.Context(), principalID(r), commentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, "comment like toggled")
}

func (h *LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	tweetID, err := parseID(r, "tweetId")
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.likes.ToggleTweet(r.Context(), principalID(r), tweetID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, "tweet like toggled")
}

func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.likes.LikedVideos(r.Context(), principalID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, videos, "liked videos")
}
