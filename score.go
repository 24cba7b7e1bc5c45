package inkscore

type (
	// Part is one instrument's line in the score. Elements refer to parts
	// through their staff index: staves are numbered globally across parts
	// in order, Staves per part.
	Part struct {
		ID      EntityID
		Name    string
		Staves  int
		Program int // General MIDI program for the playback boundary
	}

	// Tempo is a beats-per-minute change taking effect at a tick.
	Tempo struct {
		Tick TickPosition
		BPM  float64
	}

	// Score is the root aggregate: ordered parts, tick-contiguous measures
	// (measures[i+1].StartTick == measures[i].EndTick()), the spanner
	// collection and the tempo map. A Score is treated as immutable by every
	// consumer; all mutation goes through a MutableScore working copy which
	// publishes a fresh Score. Divisions is fixed at 480 ticks per quarter.
	Score struct {
		Parts     []Part
		Measures  []Measure
		Spanners  Spanners
		Tempos    []Tempo
		Divisions int
	}
)

// NewScore returns an empty score.
func NewScore() Score {
	return Score{Divisions: TicksPerQuarter}
}

// Copy makes a deep copy of a Score.
func (s Score) Copy() Score {
	ret := Score{
		Parts:     append([]Part(nil), s.Parts...),
		Measures:  make([]Measure, len(s.Measures)),
		Spanners:  s.Spanners.Copy(),
		Tempos:    append([]Tempo(nil), s.Tempos...),
		Divisions: s.Divisions,
	}
	for i, m := range s.Measures {
		ret.Measures[i] = m.Copy()
	}
	return ret
}

// EndTick returns the first tick after the last measure, 0 for an empty
// score.
func (s Score) EndTick() TickPosition {
	if len(s.Measures) == 0 {
		return 0
	}
	return s.Measures[len(s.Measures)-1].EndTick()
}

// NumStaves returns the total staff count over all parts, at least 1 so an
// empty score still lays out a staff.
func (s Score) NumStaves() int {
	ret := 0
	for _, p := range s.Parts {
		ret += p.Staves
	}
	if ret == 0 {
		return 1
	}
	return ret
}

// MeasureIndexAt returns the index of the measure whose range contains the
// tick, or -1. Measures are tick-contiguous and sorted, so this is a binary
// search.
func (s Score) MeasureIndexAt(tick TickPosition) int {
	lo, hi := 0, len(s.Measures)
	for lo < hi {
		mid := (lo + hi) / 2
		if s.Measures[mid].EndTick() <= tick {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(s.Measures) && s.Measures[lo].Range().Contains(tick) {
		return lo
	}
	return -1
}

// MeasureByID returns the measure with the given id, or nil.
func (s Score) MeasureByID(id EntityID) *Measure {
	for i := range s.Measures {
		if s.Measures[i].ID == id {
			return &s.Measures[i]
		}
	}
	return nil
}

// ElementLocation points at one element's place in the score tree.
type ElementLocation struct {
	MeasureIndex int
	SegmentIndex int
	Voice        int
	ElementIndex int
}

// FindElement walks the score for the element with the given id. Consumers
// holding only an immutable Score use this; the mutation surface keeps an
// index instead.
func (s Score) FindElement(id EntityID) (Element, ElementLocation, bool) {
	for mi := range s.Measures {
		for si := range s.Measures[mi].Segments {
			for voice, slice := range s.Measures[mi].Segments[si].Voices {
				for ei, e := range slice.Elements {
					if e.Base().ID == id {
						return e, ElementLocation{mi, si, voice, ei}, true
					}
				}
			}
		}
	}
	return nil, ElementLocation{}, false
}

// ClefForStaff returns the clef in effect for the given staff at the given
// measure index, walking backwards over clef overrides. Defaults to treble.
func (s Score) ClefForStaff(measureIndex, staff int) Clef {
	for i := measureIndex; i >= 0; i-- {
		if i < len(s.Measures) && s.Measures[i].Clef != nil {
			return *s.Measures[i].Clef
		}
	}
	if staff&1 == 1 {
		return BassClef
	}
	return TrebleClef
}

// TempoAt returns the tempo in effect at the tick, 120 BPM if the tempo map
// is empty or starts later.
func (s Score) TempoAt(tick TickPosition) float64 {
	bpm := 120.0
	for _, t := range s.Tempos {
		if t.Tick > tick {
			break
		}
		bpm = t.BPM
	}
	return bpm
}
