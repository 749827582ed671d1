package access

import (
	"errors"

	"github.com/google/uuid"
)

// ErrAccessDenied is the sentinel all denial errors unwrap to. Callers
// at the request boundary match on it and translate it into a 4xx-class
// rejection; it must never be downgraded to an empty result.
var ErrAccessDenied = errors.New("access denied")

// DeniedError carries the denied operation and target tenant for
// logging and auditing. Its Error string is deliberately generic so a
// rejection reveals nothing about whether the target tenant exists.
type DeniedError struct {
	Operation    string
	TargetTenant uuid.UUID
}

func newDenied(operation string, target uuid.UUID) *DeniedError {
	return &DeniedError{Operation: operation, TargetTenant: target}
}

// Error returns a generic message with no tenant-identifying detail.
func (e *DeniedError) Error() string { return "access denied" }

// Unwrap makes errors.Is(err, ErrAccessDenied) hold for every denial.
func (e *DeniedError) Unwrap() error { return ErrAccessDenied }
