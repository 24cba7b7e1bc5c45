package inkscore

// Articulation is a performance marking attached to a note or chord.
type Articulation int

const (
	Staccato Articulation = iota
	Accent
	Tenuto
	Marcato
	Fermata
)

// GraceKind tells how a grace group relates to its principal note's time.
type GraceKind int

const (
	// Acciaccatura notes are crushed in before the beat; the principal note
	// keeps its full length.
	Acciaccatura GraceKind = iota
	// Appoggiatura notes steal time from the principal note. The policy is
	// applied at playback expansion; the stored ticks are never altered.
	Appoggiatura
)

type (
	// ElementBase is the capability shared by every musical element: an
	// identity plus a voice and staff assignment.
	ElementBase struct {
		ID    EntityID
		Voice int
		Staff int
	}

	// Element is the tagged variant over all musical element kinds. Callers
	// dispatch on the concrete type (Note, Chord, Rest, GraceGroup) with a
	// type switch; the interface only carries the shared capability.
	Element interface {
		Base() ElementBase
		// CopyElement makes a deep copy so that mutating the copy never
		// aliases the original.
		CopyElement() Element
	}

	// Note is a single pitch with a duration. Written and tick durations are
	// both stored; WrittenDuration.Ticks() and Ticks must agree, which the
	// mutation surface maintains. TieStart/TieEnd reference the tie spanners
	// this note participates in, NoEntity if none.
	Note struct {
		ElementBase
		Pitch    NotatedPitch
		Playback PlaybackPitch
		Written  WrittenDuration
		Ticks    TickDuration
		Velocity int
		Marks    []Articulation
		TieStart EntityID
		TieEnd   EntityID
	}

	// Chord is pitch-plural: several simultaneous pitches sharing one
	// duration and one velocity.
	Chord struct {
		ElementBase
		Pitches  []NotatedPitch
		Playback []PlaybackPitch
		Written  WrittenDuration
		Ticks    TickDuration
		Velocity int
		Marks    []Articulation
	}

	// Rest is silence for a duration. MeasureRest marks a whole-measure rest,
	// which engraves differently from an equally long written rest.
	Rest struct {
		ElementBase
		Written     WrittenDuration
		Ticks       TickDuration
		MeasureRest bool
	}

	// GraceGroup is an ordered run of zero-tick-duration notes attached to a
	// principal note.
	GraceGroup struct {
		ElementBase
		Kind      GraceKind
		Notes     []Note
		Principal EntityID
	}
)

func (b ElementBase) Base() ElementBase { return b }

// DefaultVelocity is the MIDI velocity given to notes created without an
// explicit dynamic.
const DefaultVelocity = 80

func (n *Note) CopyElement() Element {
	ret := *n
	ret.Written = n.Written.Copy()
	ret.Marks = append([]Articulation(nil), n.Marks...)
	return &ret
}

func (c *Chord) CopyElement() Element {
	ret := *c
	ret.Pitches = append([]NotatedPitch(nil), c.Pitches...)
	ret.Playback = append([]PlaybackPitch(nil), c.Playback...)
	ret.Written = c.Written.Copy()
	ret.Marks = append([]Articulation(nil), c.Marks...)
	return &ret
}

func (r *Rest) CopyElement() Element {
	ret := *r
	ret.Written = r.Written.Copy()
	return &ret
}

func (g *GraceGroup) CopyElement() Element {
	ret := *g
	ret.Notes = make([]Note, len(g.Notes))
	for i := range g.Notes {
		ret.Notes[i] = *g.Notes[i].CopyElement().(*Note)
	}
	return &ret
}
