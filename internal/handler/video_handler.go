package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vidstream/internal/middleware"
	"vidstream/internal/model"
	"vidstream/internal/pagination"
	"vidstream/internal/service"
)

type VideoHandler struct {
	videos *service.VideoService
}

func NewVideoHandler(videos *service.VideoService) *VideoHandler {
	return &VideoHandler{videos: videos}
}

// parseID validates a path segment as a UUID before it reaches any
// query, so malformed IDs answer 400 rather than a cast error.
func parseID(r *http.Request, param string) (string, error) {
	raw := strings.TrimSpace(chi.URLParam(r, param))
	if _, err := uuid.Parse(raw); err != nil {
		return "", badRequest(param + " must be a valid id")
	}
	return raw, nil
}

func principalID(r *http.Request) string {
	if principal, ok := middleware.PrincipalFromContext(r.Context()); ok {
		return principal.ID
	}
	return ""
}

func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	p := pagination.Parse(query, service.VideoSortable...)

	ownerID := strings.TrimSpace(query.Get("userId"))
	if ownerID != "" {
		if _, err := uuid.Parse(ownerID); err != nil {
			writeError(w, badRequest("userId must be a valid id"))
			return
		}
	}

	page, err := h.videos.List(r.Context(), principalID(r), ownerID, p)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, page, "videos")
}

func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.PublishVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, badRequest("invalid JSON body"))
		return
	}

	published, err := h.videos.Publish(r.Context(), principalID(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, published, "video created")
}

func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseID(r, "videoId")
	if err != nil {
		writeError(w, err)
		return
	}

	video, err := h.videos.Get(r.Context(), principalID(r), videoID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, video, "video")
}

func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	videoID, err := parseID(r, "videoId")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, badRequest("invalid JSON body"))
		return
	}

	video, err := h.videos.Update(r.Context(), principalID(r), videoID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, video, "video updated")
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseID(r, "videoId")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.videos.Delete(r.Context(), principalID(r), videoID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil, "video deleted")
}

func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseID(r, "videoId")
	if err != nil {
		writeError(w, err)
		return
	}

	video, err := h.videos.TogglePublish(r.Context(), principalID(r), videoID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, video, "publish state toggled")
}
