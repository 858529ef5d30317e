package handler

import (
	"net/http"

	"vidstream/internal/pagination"
	"vidstream/internal/service"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
}

func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context(), principalID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, stats, "channel stats")
}

func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	p := pagination.Parse(r.URL.Query(), service.VideoSortable...)
	page, err := h.dashboard.Videos(r.Context(), principalID(r), p)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, page, "channel videos")
}
