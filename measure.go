package inkscore

import (
	"fmt"
)

// Clef selects which staff line carries which pitch.
type Clef int

const (
	TrebleClef Clef = iota
	BassClef
	AltoClef
	TenorClef
)

var clefNames = [4]string{"treble", "bass", "alto", "tenor"}

func (c Clef) String() string {
	if c < TrebleClef || c > TenorClef {
		return fmt.Sprintf("Clef(%d)", int(c))
	}
	return clefNames[c]
}

type (
	// TimeSignature is a written meter, e.g. 4/4 or 6/8.
	TimeSignature struct {
		Beats    int
		BeatUnit NoteValue
	}

	// KeySignature counts sharps (positive) or flats (negative), -7..7.
	KeySignature struct {
		Fifths int
	}

	// VoiceSlice is the ordered content of one voice at one tick. Usually a
	// single element; simultaneous grace groups and their principal share a
	// slice.
	VoiceSlice struct {
		Elements []Element
	}

	// Segment holds every voice's content at one absolute tick within a
	// measure. Voices are sparse, 1..4 per staff.
	Segment struct {
		Tick   TickPosition
		Voices map[int]VoiceSlice
	}

	// Measure owns an ordered, tick-sorted run of segments plus signature
	// overrides that are present only when they change from the previous
	// measure. Every segment tick falls within [StartTick, StartTick+Duration).
	Measure struct {
		ID        EntityID
		StartTick TickPosition
		Duration  TickDuration
		Segments  []Segment
		Time      *TimeSignature
		Key       *KeySignature
		Clef      *Clef
	}
)

// TickDuration returns the tick length of one full measure of the meter.
func (t TimeSignature) TickDuration() TickDuration {
	return TickDuration(t.Beats * t.BeatUnit.baseTicks())
}

// Copy makes a deep copy of a VoiceSlice.
func (v VoiceSlice) Copy() VoiceSlice {
	elements := make([]Element, len(v.Elements))
	for i, e := range v.Elements {
		elements[i] = e.CopyElement()
	}
	return VoiceSlice{Elements: elements}
}

// Copy makes a deep copy of a Segment.
func (s Segment) Copy() Segment {
	voices := make(map[int]VoiceSlice, len(s.Voices))
	for voice, slice := range s.Voices {
		voices[voice] = slice.Copy()
	}
	return Segment{Tick: s.Tick, Voices: voices}
}

// Copy makes a deep copy of a Measure.
func (m Measure) Copy() Measure {
	ret := m
	ret.Segments = make([]Segment, len(m.Segments))
	for i, s := range m.Segments {
		ret.Segments[i] = s.Copy()
	}
	if m.Time != nil {
		t := *m.Time
		ret.Time = &t
	}
	if m.Key != nil {
		k := *m.Key
		ret.Key = &k
	}
	if m.Clef != nil {
		c := *m.Clef
		ret.Clef = &c
	}
	return ret
}

// Range returns the measure's tick range [StartTick, StartTick+Duration).
func (m Measure) Range() TimeRange {
	return TimeRange{Start: m.StartTick, End: m.StartTick + TickPosition(m.Duration)}
}

// EndTick returns the first tick after the measure.
func (m Measure) EndTick() TickPosition {
	return m.StartTick + TickPosition(m.Duration)
}

// SegmentAt returns the index of the segment at exactly the given tick, or
// -1 if no segment sits there. Segments are tick-sorted, so this is a binary
// search.
func (m Measure) SegmentAt(tick TickPosition) int {
	lo, hi := 0, len(m.Segments)
	for lo < hi {
		mid := (lo + hi) / 2
		if m.Segments[mid].Tick < tick {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(m.Segments) && m.Segments[lo].Tick == tick {
		return lo
	}
	return -1
}
