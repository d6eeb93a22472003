package game

import (
	"fmt"
	"strings"
)

// NotFoundError reports a missing pet, stone or battle id.
type NotFoundError struct {
	Kind string
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// ValidationError carries every failing condition of a request, not just
// the first one, so callers can report them all at once.
type ValidationError struct {
	Conditions []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Conditions, "; ")
}

// ConflictError reports that an input was consumed by a concurrent
// operation between validation and the destructive commit.
type ConflictError struct {
	Kind string
	ID   uint
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %d was consumed by a concurrent operation", e.Kind, e.ID)
}

// GenerationFailureError reports that result assembly produced an invalid
// pet even after all fallbacks. Given the layered fallback this should be
// unreachable; treat it as a programming-contract violation.
type GenerationFailureError struct {
	Reason string
}

func (e *GenerationFailureError) Error() string {
	return "generation failure: " + e.Reason
}
