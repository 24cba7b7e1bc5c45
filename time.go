package inkscore

// TicksPerQuarter is the resolution of the tick timeline. All absolute
// positions and durations in the model are integer ticks at this resolution;
// nothing in the model ever stores a screen coordinate.
const TicksPerQuarter = 480

type (
	// TickPosition is an absolute position on the song's tick timeline.
	TickPosition int

	// TickDuration is a length in ticks; the actual playback length of an
	// element, as opposed to its written rhythmic spelling.
	TickDuration int

	// TimeRange is a half-open tick interval [Start, End).
	TimeRange struct {
		Start TickPosition
		End   TickPosition
	}
)

// Contains reports whether the tick falls within the range.
func (r TimeRange) Contains(tick TickPosition) bool {
	return tick >= r.Start && tick < r.End
}

// Overlaps reports whether the two half-open ranges share any tick.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// Duration returns the length of the range.
func (r TimeRange) Duration() TickDuration {
	return TickDuration(r.End - r.Start)
}
