package domain

import "time"

// Upstream degradation reasons recorded in diagnostic events. These are
// distinguishable for observability only; callers see a uniform nil result.
const (
	DegradedStatus      = "status"       // non-2xx response
	DegradedContentType = "content_type" // upstream answered with XML or HTML
	DegradedDecode      = "decode"       // malformed or non-object payload
	DegradedTimeout     = "timeout"
	DegradedTransport   = "transport"
)

// UpstreamEvent is a structured diagnostic record emitted whenever an
// upstream fetch degrades. It never reaches the check result.
type UpstreamEvent struct {
	Dataset string    `json:"dataset"`
	Label   string    `json:"label"`
	Reason  string    `json:"reason"`
	Status  int       `json:"status,omitempty"`
	Error   string    `json:"error,omitempty"`
	Elapsed int64     `json:"elapsed_ms"`
	At      time.Time `json:"at"`
}
