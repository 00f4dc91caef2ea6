// Package audit records subnet calculation requests for operational
// accountability: what was asked, from where, and how it was resolved.
// Calculation results are never stored, only the inputs and the outcome
// token.
package audit

import (
	"context"
	"time"
)

// Event represents one calculation request handled by the service.
type Event struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
	ClientIP   string    `json:"client_ip,omitempty"`
	Address    string    `json:"address"`
	MaskSpec   string    `json:"mask_spec,omitempty"`
	Source     string    `json:"source,omitempty"` // mask source on success, empty on failure
	Outcome    string    `json:"outcome"`          // "ok" or an error token
	StatusCode int       `json:"status_code"`
}

// OutcomeOK marks a calculation that produced a result.
const OutcomeOK = "ok"

// ListOptions provides filtering and pagination for listing events.
type ListOptions struct {
	Limit   int
	Offset  int
	Outcome string
	Address string
	Since   *time.Time
	Until   *time.Time
}

// Logger defines the interface for audit logging backends.
type Logger interface {
	// Log records an event. The backend assigns an ID and timestamp
	// when the event carries none.
	Log(ctx context.Context, event *Event) error

	// List retrieves events newest first with optional filtering.
	// It returns the page of events and the total matching count.
	List(ctx context.Context, opts ListOptions) ([]*Event, int, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the backend.
	Close() error
}
