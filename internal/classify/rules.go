package classify

import (
	"regexp"

	"github.com/can-bmu/restaurant-monitor/internal/models"
)

// Scope selects which form of the document a rule matches against.
type Scope int

const (
	// ScopeDoc matches the normalized document and its ASCII fold.
	ScopeDoc Scope = iota
	// ScopeRaw matches the raw markup, for attribute-level signals.
	ScopeRaw
	// ScopeBlock matches the extracted availability info block.
	ScopeBlock
)

// Rule is one entry of an ordered signal battery: first match wins, so rule
// order encodes trust (embedded JSON above UI text above generic text).
type Rule struct {
	Scope   Scope
	Pattern *regexp.Regexp
	Status  models.Status
	Source  models.Source
	Reason  string
}

// Patterns are written in plain-ASCII Romanian; the ASCII shadow produced by
// textnorm makes diacritic spellings land on the same rule.
var boltRules = []Rule{
	{
		Scope:   ScopeDoc,
		Pattern: regexp.MustCompile(`"availabilitystatus"\s*:\s*"closed"`),
		Status:  models.StatusClosed,
		Source:  models.SourceHTMLJSON,
		Reason:  "Bolt JSON availabilityStatus=closed",
	},
	{
		Scope:   ScopeRaw,
		Pattern: regexp.MustCompile(`(?i)aria-label="[^"]*(închis|inchis|temporar|closed)[^"]*"`),
		Status:  models.StatusClosed,
		Source:  models.SourceHTMLBlock,
		Reason:  "Bolt aria-label mentions inchis/temporar/closed",
	},
	{
		Scope:   ScopeBlock,
		Pattern: regexp.MustCompile(`\binchis temporar\b`),
		Status:  models.StatusClosed,
		Source:  models.SourceHTMLBlock,
		Reason:  `Bolt availability block: "Inchis temporar"`,
	},
	{
		Scope:   ScopeBlock,
		Pattern: regexp.MustCompile(`\binchis\b`),
		Status:  models.StatusClosed,
		Source:  models.SourceHTMLBlock,
		Reason:  `Bolt availability block: "Inchis"`,
	},
	{
		Scope:   ScopeBlock,
		Pattern: regexp.MustCompile(`deschide la \d{1,2}[:.]\d{2}`),
		Status:  models.StatusClosed,
		Source:  models.SourceHTMLBlock,
		Reason:  `Bolt availability block: "Deschide la HH:MM"`,
	},
	{
		Scope:   ScopeBlock,
		Pattern: regexp.MustCompile(`\btemporarily closed\b`),
		Status:  models.StatusClosed,
		Source:  models.SourceHTMLBlock,
		Reason:  `Bolt availability block: "temporarily closed"`,
	},
	{
		Scope:   ScopeDoc,
		Pattern: regexp.MustCompile(`\binchis temporar\b`),
		Status:  models.StatusClosed,
		Source:  models.SourceHTMLText,
		Reason:  `Bolt page text: "Inchis temporar"`,
	},
	{
		Scope:   ScopeDoc,
		Pattern: regexp.MustCompile(`\binchis\b`),
		Status:  models.StatusClosed,
		Source:  models.SourceHTMLText,
		Reason:  `Bolt page text: "Inchis"`,
	},
	{
		Scope:   ScopeDoc,
		Pattern: regexp.MustCompile(`\btemporarily closed\b`),
		Status:  models.StatusClosed,
		Source:  models.SourceHTMLText,
		Reason:  `Bolt page text: "temporarily closed"`,
	},
	{
		Scope:   ScopeDoc,
		Pattern: regexp.MustCompile(`deschide la \d{1,2}[:.]\d{2}`),
		Status:  models.StatusClosed,
		Source:  models.SourceHTMLText,
		Reason:  `Bolt page text: "Deschide la HH:MM"`,
	},
	// No open-now rule for Bolt: the page shell is a SPA and does not
	// reliably narrate "open", so absence of a closed signal must stay
	// uncertain rather than drift to open.
}

var woltRules = []Rule{
	{
		Scope:   ScopeDoc,
		Pattern: regexp.MustCompile(`"is_open"\s*:\s*false`),
		Status:  models.StatusClosed,
		Source:  models.SourceHTMLJSON,
		Reason:  "Wolt JSON is_open=false",
	},
	{
		Scope:   ScopeDoc,
		Pattern: regexp.MustCompile(`"is_open"\s*:\s*true`),
		Status:  models.StatusOpen,
		Source:  models.SourceHTMLJSON,
		Reason:  "Wolt JSON is_open=true",
	},
	{
		Scope:   ScopeDoc,
		Pattern: regexp.MustCompile(`\binchis\b|\bclosed\b`),
		Status:  models.StatusClosed,
		Source:  models.SourceHTMLText,
		Reason:  `Wolt page text: "inchis"/"closed"`,
	},
	{
		Scope:   ScopeDoc,
		Pattern: regexp.MustCompile(`\bopen now\b|\bdeschis acum\b`),
		Status:  models.StatusOpen,
		Source:  models.SourceHTMLText,
		Reason:  `Wolt page text: "open now"/"deschis acum"`,
	},
}

var genericRules = []Rule{
	{
		Scope:   ScopeDoc,
		Pattern: regexp.MustCompile(`\bclosed\b|\binchis\b`),
		Status:  models.StatusClosed,
		Source:  models.SourceHTMLText,
		Reason:  `page text: "closed"/"inchis"`,
	},
	{
		Scope:   ScopeDoc,
		Pattern: regexp.MustCompile(`\bopen now\b|\bdeschis acum\b`),
		Status:  models.StatusOpen,
		Source:  models.SourceHTMLText,
		Reason:  `page text: "open now"/"deschis acum"`,
	},
}
