package models

import "time"

// Platform identifies which delivery platform a storefront lives on.
type Platform string

const (
	PlatformBolt Platform = "Bolt"
	PlatformWolt Platform = "Wolt"
)

// Status is the outcome of classifying one storefront at one point in time.
type Status string

const (
	StatusOpen      Status = "open"
	StatusClosed    Status = "closed"
	StatusUncertain Status = "uncertain"
	StatusError     Status = "error"
)

// Source records which signal produced a verdict, so an operator can tell
// a platform API answer apart from a text heuristic.
type Source string

const (
	SourceAPI         Source = "api"
	SourceHTMLJSON    Source = "html-json"
	SourceHTMLBlock   Source = "html-ui-text"
	SourceHTMLText    Source = "html-generic-text"
	SourceHTTPError   Source = "http-error"
	SourceNetwork     Source = "network-error"
	SourceUnavailable Source = "not-checked"
)

// Location is a registered monitoring target. Immutable for the process
// lifetime; loaded once from the static registry.
type Location struct {
	Platform Platform `json:"platform"`
	Name     string   `json:"location"`
	URL      string   `json:"url"`
	Brand    string   `json:"brand"`
	Test     bool     `json:"test,omitempty"`
}

// Verdict is the outcome of one classification attempt.
// Reason is never empty when Status is closed or error.
type Verdict struct {
	Status Status `json:"status"`
	Reason string `json:"reason"`
	Source Source `json:"source"`
}

// StatusRecord binds a Location to its most recent Verdict.
type StatusRecord struct {
	Location
	Verdict
	CheckedAt time.Time `json:"checked_at"`
}

// Snapshot is the full result set of one sweep, keyed by storefront URL.
// A published snapshot is never mutated; each sweep replaces it wholesale.
type Snapshot struct {
	Records     map[string]StatusRecord `json:"records"`
	CompletedAt time.Time               `json:"completed_at"`
}
