package handler

import (
	"encoding/json"
	"net/http"

	"vidstream/internal/model"
	"vidstream/internal/service"
)

type PlaylistHandler struct {
	playlists *service.PlaylistService
}

func NewPlaylistHandler(playlists *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists}
}

func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, badRequest("invalid JSON body"))
		return
	}

	playlist, err := h.playlists.Create(r.Context(), principalID(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, playlist, "playlist created")
}

func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlistID, err := parseID(r, "playlistId")
	if err != nil {
		writeError(w, err)
		return
	}

	playlist, err := h.playlists.Get(r.Context(), principalID(r), playlistID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, playlist, "playlist")
}

func (h *PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	playlists, err := h.playlists.ListByOwner(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, playlists, "playlists")
}

func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	playlistID, err := parseID(r, "playlistId")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, badRequest("invalid JSON body"))
		return
	}

	playlist, err := h.playlists.Update(r.Context(), principalID(r), playlistID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, playlist, "playlist updated")
}

func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	playlistID, err := parseID(r, "playlistId")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.playlists.Delete(r.Context(), principalID(r), playlistID); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil, "playlist deleted")
}

func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	playlistID, err := parseID(r, "playlistId")
	if err != nil {
		writeError(w, err)
		return
	}
	videoID, err := parseID(r, "videoId")
	if err != nil {
		writeError(w, err)
		return
	}

	playlist, err := h.playlists.AddVideo(r.Context(), principalID(r), playlistID, videoID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, playlist, "video added to playlist")
}

func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	playlistID, err := parseID(r, "playlistId")
	if err != nil {
		writeError(w, err)
		return
	}
	videoID, err := parseID(r, "videoId")
	if err != nil {
		writeError(w, err)
		return
	}

	playlist, err := h.playlists.RemoveVideo(r.Context(), principalID(r), playlistID, videoID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, playlist, "video removed from playlist")
}
