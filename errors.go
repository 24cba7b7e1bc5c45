package inkscore

import (
	"errors"
)

// Error kinds surfaced by the mutation surface. Commands wrap these with
// context; callers test with errors.Is.
var (
	// ErrUnknownEntity means an id did not resolve to a live entity.
	ErrUnknownEntity = errors.New("unknown entity")
	// ErrInvalidPosition means a tick, voice or staff was outside the valid
	// range for the operation.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrConflict means the operation would break a model invariant, such as
	// overlapping two elements in one voice.
	ErrConflict = errors.New("conflicting content")
)
