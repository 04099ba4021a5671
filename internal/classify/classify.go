// Package classify decides open/closed from a fetched storefront page when
// the platform's private API gave no answer. It is a pure function of the
// markup: same document in, same verdict out.
package classify

import (
	"github.com/can-bmu/restaurant-monitor/internal/models"
	"github.com/can-bmu/restaurant-monitor/internal/textnorm"
)

// Classifier runs the per-platform rule battery over a document.
type Classifier struct {
	// AssumeClosedBolt turns a no-signal Bolt page into a Closed verdict
	// instead of Uncertain.
	AssumeClosedBolt bool
}

// New creates a Classifier.
func New(assumeClosedBolt bool) *Classifier {
	return &Classifier{AssumeClosedBolt: assumeClosedBolt}
}

// Classify runs the ordered rule battery for the platform over the raw
// markup and returns the first matching verdict, or the platform's
// uncertainty default when nothing matches.
func (c *Classifier) Classify(platform models.Platform, doc string) models.Verdict {
	plain, ascii := textnorm.Normalize(doc)
	block, blockOK := textnorm.AvailabilityInfo(doc)
	blockASCII := ""
	if blockOK {
		blockASCII = textnorm.FoldASCII(block)
	}

	rules := genericRules
	switch platform {
	case models.PlatformBolt:
		rules = boltRules
	case models.PlatformWolt:
		rules = woltRules
	}

	for _, r := range rules {
		var hit bool
		switch r.Scope {
		case ScopeRaw:
			hit = r.Pattern.MatchString(doc)
		case ScopeBlock:
			hit = blockOK && (r.Pattern.MatchString(block) || r.Pattern.MatchString(blockASCII))
		default:
			hit = r.Pattern.MatchString(plain) || r.Pattern.MatchString(ascii)
		}
		if hit {
			return models.Verdict{Status: r.Status, Reason: r.Reason, Source: r.Source}
		}
	}

	return c.uncertain(platform)
}

func (c *Classifier) uncertain(platform models.Platform) models.Verdict {
	switch platform {
	case models.PlatformBolt:
		if c.AssumeClosedBolt {
			return models.Verdict{
				Status: models.StatusClosed,
				Reason: "Bolt: no signal, assume-closed fallback enabled",
				Source: models.SourceHTMLText,
			}
		}
		return models.Verdict{
			Status: models.StatusUncertain,
			Reason: "Bolt: no closed or opens-at signal in page",
			Source: models.SourceHTMLText,
		}
	case models.PlatformWolt:
		return models.Verdict{
			Status: models.StatusUncertain,
			Reason: "Wolt: is_open absent or undetectable",
			Source: models.SourceHTMLText,
		}
	}
	return models.Verdict{
		Status: models.StatusUncertain,
		Reason: "no signals in page markup",
		Source: models.SourceHTMLText,
	}
}
