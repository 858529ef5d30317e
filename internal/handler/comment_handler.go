package handler

import (
	"encoding/json"
	"net/http"

	"vidstream/internal/model"
	"vidstream/internal/pagination"
	"vidstream/internal/service"
)

type CommentHandler struct {
	comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) ListByVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseID(r, "videoId")
	if err != nil {
		writeError(w, err)
		return
	}

	p := pagination.Parse(r.URL.Query())
	page, err := h.comments.ListByVideo(r.Context(), principalID(r), videoID, p)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, page, "comments")
}

func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	videoID, err := parseID(r, "videoId")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, badRequest("invalid JSON body"))
		return
	}

	comment, err := h.comments.Add(r.Context(), principalID(r), videoID, payload.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, comment, "comment added")
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	commentID, err := parseID(r, "commentId")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, badRequest("invalid JSON body"))
		return
	}

	comment, err := h.comments.Update(r.Context(), principalID(r), commentID, payload.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, comment, "comment updated")
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, err := parseID(r, "commentId")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.comments.Delete(r.Context(), principalID(r), commentID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil, "comment deleted")
}
