package handlers

import (
	"log/slog"
	"net/http"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Posts    int    `json:"posts"`
	Files    int    `json:"files"`
}

// HealthHandler reports datastore connectivity and record counts. It always
// answers 200 and flags problems in the body.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "healthy", Database: "connected"}

	if err := h.DB.HealthCheck(r.Context()); err != nil {
		slog.Warn("database health check failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "disconnected"
		writeJSON(w, http.StatusOK, resp)
		return
	}

	stats, err := h.StatsService.GetStats(r.Context())
	if err != nil {
		slog.Warn("health stats unavailable", "error", err)
		resp.Status = "degraded"
	} else {
		resp.Posts = stats.Posts
		resp.Files = stats.Files
	}

	writeJSON(w, http.StatusOK, resp)
}
