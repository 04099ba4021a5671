package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/can-bmu/restaurant-monitor/internal/fetch"
	"github.com/can-bmu/restaurant-monitor/internal/models"
)

const (
	defaultWoltBaseURL = "https://restaurant-api.wolt.com"
	woltSlugMarker     = "/restaurant/"
)

// woltOpenPaths lists every place an open/closed indicator has been seen in
// the venue response, most recent shape first. Each is tried in order and
// independently type-checked; schema drift lands here and nowhere else.
var woltOpenPaths = []string{
	"venue.open_status.is_open",
	"venue.delivery_open_status.is_open",
	"venue.online",
	"venue.alive",
	"venue.status",
	"results.0.online",
	"results.0.alive",
	"results.0.status",
}

// Wolt probes the Wolt venue-lookup endpoint for a storefront slug.
type Wolt struct {
	client *fetch.Client

	// BaseURL is overridable so tests can point the probe at a mock server.
	BaseURL string
	// Lat/Lon are required by the venue API to resolve regional hours.
	Lat float64
	Lon float64
}

// NewWolt creates a Wolt probe using the shared fetch client and the
// configured default coordinate.
func NewWolt(client *fetch.Client, lat, lon float64) *Wolt {
	return &Wolt{client: client, BaseURL: defaultWoltBaseURL, Lat: lat, Lon: lon}
}

func (w *Wolt) Platform() models.Platform { return models.PlatformWolt }

func (w *Wolt) Matches(rawURL string) bool {
	return strings.Contains(rawURL, "wolt.com")
}

// slugOf extracts the venue slug: the path segment right after /restaurant/.
func slugOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	idx := strings.Index(u.Path, woltSlugMarker)
	if idx < 0 {
		return ""
	}
	rest := u.Path[idx+len(woltSlugMarker):]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// Check queries the venue endpoint and hunts the response for an explicit
// open/closed indicator, then for "opens at"/"open until" narration.
// Declines when nothing is found rather than guessing.
func (w *Wolt) Check(ctx context.Context, rawURL string) (models.Verdict, bool) {
	slug := slugOf(rawURL)
	if slug == "" {
		return models.Verdict{}, false
	}

	endpoint := fmt.Sprintf("%s/v1/pages/venue/%s?lat=%g&lon=%g", w.BaseURL, url.PathEscape(slug), w.Lat, w.Lon)
	resp, err := w.client.Get(ctx, endpoint)
	if err != nil || resp.StatusCode >= 400 {
		return models.Verdict{}, false
	}

	var doc any
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return models.Verdict{}, false
	}

	for _, path := range woltOpenPaths {
		value, found := lookupPath(doc, path)
		if !found {
			continue
		}
		if v, ok := interpretOpenValue(path, value); ok {
			return v, true
		}
	}

	// Secondary textual signal: the response sometimes narrates hours
	// instead of carrying a flag.
	body := strings.ToLower(string(resp.Body))
	if strings.Contains(body, "opens at") {
		return models.Verdict{
			Status: models.StatusClosed,
			Reason: `Wolt API narrates "opens at"`,
			Source: models.SourceAPI,
		}, true
	}
	if strings.Contains(body, "open until") {
		return models.Verdict{
			Status: models.StatusOpen,
			Reason: `Wolt API narrates "open until"`,
			Source: models.SourceAPI,
		}, true
	}

	return models.Verdict{}, false
}

// interpretOpenValue normalizes one candidate value: booleans directly,
// string enums by vocabulary. Unrecognized values are skipped so the next
// candidate path can still answer.
func interpretOpenValue(path string, value any) (models.Verdict, bool) {
	verdict := func(open bool) (models.Verdict, bool) {
		status := models.StatusClosed
		if open {
			status = models.StatusOpen
		}
		return models.Verdict{
			Status: status,
			Reason: fmt.Sprintf("Wolt API %s=%v", path, value),
			Source: models.SourceAPI,
		}, true
	}

	switch v := value.(type) {
	case bool:
		return verdict(v)
	case string:
		switch strings.ToUpper(v) {
		case "OPEN", "ONLINE":
			return verdict(true)
		case "CLOSED", "OFFLINE":
			return verdict(false)
		}
	}
	return models.Verdict{}, false
}
