package inkscore

import (
	"fmt"
)

// NoteValue is the written base value of a duration, whole note down to
// sixty-fourth.
type NoteValue int

const (
	Whole NoteValue = iota
	Half
	Quarter
	Eighth
	Sixteenth
	ThirtySecond
	SixtyFourth
)

var noteValueNames = [7]string{"whole", "half", "quarter", "eighth", "16th", "32nd", "64th"}

func (v NoteValue) String() string {
	if v < Whole || v > SixtyFourth {
		return fmt.Sprintf("NoteValue(%d)", int(v))
	}
	return noteValueNames[v]
}

// baseTicks returns the tick length of the plain note value: a whole note is
// four quarters, each following value halves the previous.
func (v NoteValue) baseTicks() int {
	return (TicksPerQuarter * 4) >> uint(v)
}

type (
	// Tuplet rescales written durations by Normal/Actual: a triplet fits
	// Actual=3 notes in the time of Normal=2.
	Tuplet struct {
		Actual int
		Normal int
	}

	// WrittenDuration is the rhythmic spelling of a duration: a base note
	// value, up to three augmentation dots and an optional enclosing tuplet.
	// The spelling maps deterministically to exactly one tick length; the
	// reverse mapping is not unique, as engraving is a presentation choice.
	WrittenDuration struct {
		Base   NoteValue
		Dots   int
		Tuplet *Tuplet
	}
)

// NewWrittenDuration validates and builds a WrittenDuration.
func NewWrittenDuration(base NoteValue, dots int, tuplet *Tuplet) (WrittenDuration, error) {
	if base < Whole || base > SixtyFourth {
		return WrittenDuration{}, fmt.Errorf("invalid note value %d", int(base))
	}
	if dots < 0 || dots > 3 {
		return WrittenDuration{}, fmt.Errorf("dot count %d out of range [0,3]", dots)
	}
	if tuplet != nil && (tuplet.Actual < 1 || tuplet.Normal < 1) {
		return WrittenDuration{}, fmt.Errorf("invalid tuplet ratio %d:%d", tuplet.Actual, tuplet.Normal)
	}
	return WrittenDuration{Base: base, Dots: dots, Tuplet: tuplet}, nil
}

// Ticks computes the playback length of the written duration: the base value
// in ticks, plus each dot adding half of the previously added value, scaled
// by the tuplet's Normal/Actual ratio and rounded to the nearest tick.
func (d WrittenDuration) Ticks() TickDuration {
	ticks := d.Base.baseTicks()
	add := ticks
	for i := 0; i < d.Dots; i++ {
		add /= 2
		ticks += add
	}
	if d.Tuplet != nil {
		ticks = (ticks*d.Tuplet.Normal + d.Tuplet.Actual/2) / d.Tuplet.Actual
	}
	return TickDuration(ticks)
}

// Copy makes a deep copy of a WrittenDuration.
func (d WrittenDuration) Copy() WrittenDuration {
	if d.Tuplet == nil {
		return d
	}
	t := *d.Tuplet
	return WrittenDuration{Base: d.Base, Dots: d.Dots, Tuplet: &t}
}

func (d WrittenDuration) String() string {
	ret := d.Base.String()
	for i := 0; i < d.Dots; i++ {
		ret += "."
	}
	if d.Tuplet != nil {
		ret += fmt.Sprintf(" (%d:%d)", d.Tuplet.Actual, d.Tuplet.Normal)
	}
	return ret
}
