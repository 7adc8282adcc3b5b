// This file implements the statistics endpoints backing the dashboards.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/ignisguard/server/internal/auth"
	"github.com/ignisguard/server/internal/service"
)

// StatsHandler handles dashboard statistics requests.
type StatsHandler struct {
	stats  service.StatsService
	logger *slog.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(stats service.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, logger: logger}
}

// Mine handles GET /api/stats/me, aggregating over the caller's own
// inspection history.
func (h *StatsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.GetPrincipal(r.Context())

	result, err := h.stats.ForInspector(r.Context(), p.ID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Fleet handles GET /api/stats/fleet, aggregating over every registered
// asset. Admin only; routing enforces it.
func (h *StatsHandler) Fleet(w http.ResponseWriter, r *http.Request) {
	result, err := h.stats.ForFleet(r.Context())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
