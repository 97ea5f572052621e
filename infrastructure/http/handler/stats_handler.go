package handler

import (
	"net/http"

	"github.com/horolog/horolog/application/port/inbound"
	"github.com/horolog/horolog/infrastructure/http/response"
)

type StatsHandler struct {
	stats inbound.StatsService
}

func NewStatsHandler(stats inbound.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Dashboard(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, stats)
}
