// Package probe implements the platform-specific availability checks that
// run before any HTML scraping. A probe answers from the platform's own
// API when it can, and declines when it can't; declining is not an error,
// it just sends the caller to the HTML fallback.
package probe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/can-bmu/restaurant-monitor/internal/models"
)

// Probe checks one platform's private API for a storefront URL.
type Probe interface {
	Platform() models.Platform
	// Matches reports whether this probe applies to the URL's domain.
	Matches(url string) bool
	// Check returns a verdict and true, or declines with false when it
	// cannot extract an identifier, reach the API, or read the response.
	// A declining probe never fabricates a verdict.
	Check(ctx context.Context, url string) (models.Verdict, bool)
}

// deviceID derives a stable synthetic device identifier from a provider
// key. The platforms expect a device id on API calls; deriving it keeps it
// constant across sweeps without holding any real session state.
func deviceID(key string) string {
	sum := sha256.Sum256([]byte("restaurant-monitor:" + key))
	h := hex.EncodeToString(sum[:16])
	return h[0:8] + "-" + h[8:12] + "-" + h[12:16] + "-" + h[16:20] + "-" + h[20:32]
}
