package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/can-bmu/restaurant-monitor/internal/models"
	"github.com/can-bmu/restaurant-monitor/internal/sweep"
)

// Version is reported on the status payload and the dashboard badge.
const Version = "v0.2.0"

// displayTimeFormat matches what the dashboard tables show.
const displayTimeFormat = "2006-01-02 15:04:05"

// Handlers holds dependencies for the API handlers.
type Handlers struct {
	sweeper   *sweep.Sweeper
	locations []models.Location
	tz        *time.Location
}

// NewHandlers creates a Handlers struct. locations must already be in
// display order.
func NewHandlers(sweeper *sweep.Sweeper, locations []models.Location) *Handlers {
	tz, err := time.LoadLocation("Europe/Bucharest")
	if err != nil {
		tz = time.UTC
	}
	return &Handlers{sweeper: sweeper, locations: locations, tz: tz}
}

type statusItem struct {
	Platform  models.Platform `json:"platform"`
	Location  string          `json:"location"`
	Brand     string          `json:"brand"`
	URL       string          `json:"url"`
	Status    models.Status   `json:"status"`
	Reason    string          `json:"reason"`
	Source    models.Source   `json:"source"`
	CheckedAt string          `json:"checked_at"`
	Test      bool            `json:"test,omitempty"`
}

type statusResponse struct {
	Version         string       `json:"version"`
	LastFullCheck   string       `json:"last_full_check"`
	IntervalSeconds int          `json:"interval_seconds"`
	Items           []statusItem `json:"items"`
}

// GetStatus returns the latest sweep's verdict for every registered
// location. Locations the sweeper has not reached yet are reported as
// uncertain rather than omitted: the caller always gets the full registry.
func (h *Handlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	snap := h.sweeper.Snapshot()

	resp := statusResponse{
		Version:         Version,
		IntervalSeconds: int(h.sweeper.Interval().Seconds()),
		Items:           make([]statusItem, 0, len(h.locations)),
	}
	if snap != nil {
		resp.LastFullCheck = snap.CompletedAt.In(h.tz).Format(displayTimeFormat)
	}

	for _, loc := range h.locations {
		item := statusItem{
			Platform:  loc.Platform,
			Location:  loc.Name,
			Brand:     loc.Brand,
			URL:       loc.URL,
			Status:    models.StatusUncertain,
			Reason:    "not checked yet",
			Source:    models.SourceUnavailable,
			CheckedAt: "—",
			Test:      loc.Test,
		}
		if snap != nil {
			if rec, ok := snap.Records[loc.URL]; ok {
				item.Status = rec.Status
				item.Reason = rec.Reason
				item.Source = rec.Source
				item.CheckedAt = rec.CheckedAt.In(h.tz).Format(displayTimeFormat)
			}
		}
		resp.Items = append(resp.Items, item)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("error encoding status response: %v", err)
	}
}

// Refresh runs a full sweep synchronously and reports when it finished.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	snap := h.sweeper.Sweep(r.Context())
	if snap == nil {
		// Request aborted mid-sweep and nothing was ever published.
		http.Error(w, `{"ok": false}`, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		OK          bool   `json:"ok"`
		RefreshedAt string `json:"refreshed_at"`
	}{
		OK:          true,
		RefreshedAt: snap.CompletedAt.In(h.tz).Format(displayTimeFormat),
	})
}

// Healthz is a simple health check endpoint.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
