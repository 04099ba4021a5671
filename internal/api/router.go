package api

import (
	"net/http"

	"github.com/can-bmu/restaurant-monitor/internal/models"
	"github.com/can-bmu/restaurant-monitor/internal/sweep"
)

// NewRouter creates a new http.ServeMux and registers the API handlers.
func NewRouter(sweeper *sweep.Sweeper, locations []models.Location) *http.ServeMux {
	mux := http.NewServeMux()
	h := NewHandlers(sweeper, locations)

	mux.HandleFunc("GET /{$}", h.Dashboard)
	mux.HandleFunc("GET /api/status", h.GetStatus)
	mux.HandleFunc("POST /api/refresh", h.Refresh)
	mux.HandleFunc("GET /healthz", h.Healthz)

	return mux
}
