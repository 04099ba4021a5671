// Package resolve is the single source of truth for "what does this URL's
// status mean right now": platform probe first, HTML classification second,
// with every failure contained to the one location being checked.
package resolve

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/can-bmu/restaurant-monitor/internal/classify"
	"github.com/can-bmu/restaurant-monitor/internal/fetch"
	"github.com/can-bmu/restaurant-monitor/internal/models"
	"github.com/can-bmu/restaurant-monitor/internal/probe"
)

// maxDiagnosticLen bounds the transport-error text carried in a reason.
const maxDiagnosticLen = 140

// Resolver composes the platform probes and the HTML fallback classifier.
type Resolver struct {
	fetcher    *fetch.Client
	probes     []probe.Probe
	classifier *classify.Classifier
}

// New creates a Resolver. Probes are consulted in the given order.
func New(fetcher *fetch.Client, classifier *classify.Classifier, probes ...probe.Probe) *Resolver {
	return &Resolver{fetcher: fetcher, probes: probes, classifier: classifier}
}

// Resolve classifies one location. It never returns an unusable result:
// transport failures become an Error verdict with a truncated diagnostic,
// and a declined probe falls through to the HTML page.
func (r *Resolver) Resolve(ctx context.Context, loc models.Location) models.Verdict {
	for _, p := range r.probes {
		if !p.Matches(loc.URL) {
			continue
		}
		if v, ok := p.Check(ctx, loc.URL); ok {
			return v
		}
		break
	}
	return r.classifyPage(ctx, loc)
}

// classifyPage fetches the public storefront page and runs the rule battery.
// An HTTP error status means the storefront itself is gone, which for this
// domain reads as closed; only transport-level failures become Error.
func (r *Resolver) classifyPage(ctx context.Context, loc models.Location) models.Verdict {
	resp, err := r.fetcher.Get(ctx, loc.URL)
	if err != nil {
		return models.Verdict{
			Status: models.StatusError,
			Reason: "network error: " + truncate(err.Error(), maxDiagnosticLen),
			Source: models.SourceNetwork,
		}
	}
	if resp.StatusCode >= 400 {
		return models.Verdict{
			Status: models.StatusClosed,
			Reason: fmt.Sprintf("HTTP %d", resp.StatusCode),
			Source: models.SourceHTTPError,
		}
	}
	return r.classifier.Classify(loc.Platform, string(resp.Body))
}

// truncate shortens s to at most n bytes without cutting through a rune;
// error text can carry multi-byte diagnostics (URLs, upstream messages).
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
