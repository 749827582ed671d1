package audit

import (
	"fmt"
	"time"
)

// Result represents the outcome of an audited action.
type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
)

// Severity classifies how urgently an event needs operator attention.
type Severity string

const (
	SeverityInfo Severity = "info"
	// SeverityCritical marks security-relevant failures, such as a
	// connection leaving service because its tenant state could not be
	// cleared.
	SeverityCritical Severity = "critical"
)

// Event is a single entry in the security audit trail.
type Event struct {
	ID          string         `json:"id"`
	TenantID    string         `json:"tenant_id,omitempty"`
	PrincipalID string         `json:"principal_id,omitempty"`
	Action      string         `json:"action"`
	Resource    string         `json:"resource,omitempty"`
	Result      Result         `json:"result"`
	Severity    Severity       `json:"severity"`
	Error       string         `json:"error,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Validate checks that the event carries the required fields.
func (e *Event) Validate() error {
	if e.Action == "" {
		return fmt.Errorf("%w: action is required", ErrEventValidation)
	}
	return nil
}

// EventOption applies configuration to an Event during creation.
type EventOption func(*Event)

// WithResource sets the resource the event concerns.
func WithResource(resource string) EventOption {
	return func(e *Event) {
		e.Resource = resource
	}
}

// WithMetadata adds one metadata entry to the event.
func WithMetadata(key string, value any) EventOption {
	return func(e *Event) {
		if e.Metadata == nil {
			e.Metadata = make(map[string]any)
		}
		e.Metadata[key] = value
	}
}

// WithSeverity overrides the event severity.
func WithSeverity(s Severity) EventOption {
	return func(e *Event) {
		e.Severity = s
	}
}
