package inkscore

import (
	"github.com/google/uuid"
)

// EntityID identifies a single addressable entity in a score: a note, chord,
// rest, grace group, measure, spanner or part. IDs are UUIDv7, so sorting
// them lexicographically sorts entities by creation time. The zero value
// means "no entity" and is never generated.
type EntityID string

// NoEntity is the zero EntityID, used for optional references such as a
// note's tie endpoints.
const NoEntity EntityID = ""

// NewEntityID returns a fresh, never-reused id. UUIDv7 generation can only
// fail if the system clock/entropy source is broken, in which case there is
// nothing sensible to do but give up loudly.
func NewEntityID() EntityID {
	id, err := uuid.NewV7()
	if err != nil {
		panic("inkscore: uuid generation failed: " + err.Error())
	}
	return EntityID(id.String())
}

// IsNone reports whether the id refers to no entity.
func (e EntityID) IsNone() bool {
	return e == NoEntity
}

// Less orders ids chronologically by creation time.
func (e EntityID) Less(other EntityID) bool {
	return e < other
}
