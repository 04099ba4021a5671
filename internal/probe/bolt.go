package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/can-bmu/restaurant-monitor/internal/fetch"
	"github.com/can-bmu/restaurant-monitor/internal/models"
)

const defaultBoltBaseURL = "https://deliveryuserapi.live.boltsvc.net"

// Storefront paths look like /ro-RO/325-bucharest/p/53203-some-slug; the
// digits right after /p/ are the provider id.
var boltProviderRe = regexp.MustCompile(`/p/(\d+)`)

// Bolt probes the Bolt Food availability endpoint for a provider.
type Bolt struct {
	client *fetch.Client

	// BaseURL is overridable so tests can point the probe at a mock server.
	BaseURL string
}

// NewBolt creates a Bolt probe using the shared fetch client.
func NewBolt(client *fetch.Client) *Bolt {
	return &Bolt{client: client, BaseURL: defaultBoltBaseURL}
}

func (b *Bolt) Platform() models.Platform { return models.PlatformBolt }

func (b *Bolt) Matches(rawURL string) bool {
	return strings.Contains(rawURL, "bolt.eu")
}

// boltAvailability mirrors the parts of the availability response we read:
// four independent capability flags plus optional operator messaging.
type boltAvailability struct {
	Data struct {
		AvailableForDelivery          bool `json:"available_for_delivery"`
		AvailableForPickup            bool `json:"available_for_pickup"`
		AvailableForScheduledDelivery bool `json:"available_for_scheduled_delivery"`
		AvailableForScheduledPickup   bool `json:"available_for_scheduled_pickup"`
		Snackbar                      struct {
			Message string `json:"message"`
		} `json:"snackbar"`
		Overlay struct {
			Title   string `json:"title"`
			Message string `json:"message"`
		} `json:"overlay"`
	} `json:"data"`
}

// Check queries the availability endpoint. The provider is open when any
// capability flag is up; otherwise closed, preferring the operator-supplied
// message ("Deschide la 10:00") as the reason.
func (b *Bolt) Check(ctx context.Context, rawURL string) (models.Verdict, bool) {
	m := boltProviderRe.FindStringSubmatch(rawURL)
	if m == nil {
		return models.Verdict{}, false
	}
	providerID := m[1]

	device := deviceID(providerID)
	q := url.Values{}
	q.Set("provider_id", providerID)
	q.Set("version", "FW.1.38")
	q.Set("language", "ro")
	q.Set("deviceId", device)
	q.Set("device_name", "web")
	q.Set("device_os_version", "web")
	q.Set("session_id", device+"-"+providerID)
	q.Set("country", "ro")
	endpoint := b.BaseURL + "/deliveryClient/user/getProviderAvailability?" + q.Encode()

	resp, err := b.client.Get(ctx, endpoint)
	if err != nil || resp.StatusCode >= 400 {
		return models.Verdict{}, false
	}

	var payload boltAvailability
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return models.Verdict{}, false
	}

	d := payload.Data
	var flags []string
	if d.AvailableForDelivery {
		flags = append(flags, "delivery")
	}
	if d.AvailableForPickup {
		flags = append(flags, "pickup")
	}
	if d.AvailableForScheduledDelivery {
		flags = append(flags, "scheduled delivery")
	}
	if d.AvailableForScheduledPickup {
		flags = append(flags, "scheduled pickup")
	}

	if len(flags) > 0 {
		return models.Verdict{
			Status: models.StatusOpen,
			Reason: "Bolt API: available for " + strings.Join(flags, ", "),
			Source: models.SourceAPI,
		}, true
	}

	reason := "Bolt API: provider unavailable"
	switch {
	case d.Snackbar.Message != "":
		reason = fmt.Sprintf("Bolt API: %q", d.Snackbar.Message)
	case d.Overlay.Message != "":
		reason = fmt.Sprintf("Bolt API: %q", d.Overlay.Message)
	case d.Overlay.Title != "":
		reason = fmt.Sprintf("Bolt API: %q", d.Overlay.Title)
	}
	return models.Verdict{
		Status: models.StatusClosed,
		Reason: reason,
		Source: models.SourceAPI,
	}, true
}
