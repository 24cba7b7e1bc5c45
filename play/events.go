// Package play is the playback boundary: it precomputes timed MIDI events
// from an immutable score. It is a pure consumer; nothing here ever calls
// into the command system or mutates the score. Wall-clock scheduling and
// device I/O are the embedding host's business.
package play

import (
	"sort"

	"github.com/jvirtanen/inkscore"
)

// graceTicks is the sounding length given to each acciaccatura note; they
// are crushed in just before the beat without stealing any time from the
// principal.
const graceTicks = inkscore.TicksPerQuarter / 8

// Event is one sounding note: an absolute tick, a duration and the MIDI
// rendering. Part is the index of the owning part, which WriteSMF maps to a
// track and channel.
type Event struct {
	Tick     inkscore.TickPosition
	Duration inkscore.TickDuration
	Key      uint8
	Velocity uint8
	Part     int
	Cents    float64
}

// Events flattens the score into tick-ordered sounding notes: tied chains
// merge into one event on the chain's first note, tie continuations emit
// nothing, and grace groups are expanded per their kind. Rests emit nothing.
func Events(score inkscore.Score) []Event {
	partOf := staffToPart(score)

	// note id -> index into events, so grace expansion can adjust principals
	byNote := make(map[inkscore.EntityID]int)
	var events []Event
	var graces []*inkscore.GraceGroup

	for _, m := range score.Measures {
		for _, seg := range m.Segments {
			for _, slice := range seg.Voices {
				for _, e := range slice.Elements {
					switch el := e.(type) {
					case *inkscore.Note:
						if !el.TieEnd.IsNone() {
							continue // continuation of a tie chain
						}
						events = append(events, Event{
							Tick:     seg.Tick,
							Duration: tiedDuration(score, el),
							Key:      uint8(el.Playback.MIDIPitch),
							Velocity: uint8(el.Velocity),
							Part:     partOf(el.Staff),
							Cents:    el.Playback.Cents,
						})
						byNote[el.ID] = len(events) - 1
					case *inkscore.Chord:
						for _, p := range el.Playback {
							events = append(events, Event{
								Tick:     seg.Tick,
								Duration: el.Ticks,
								Key:      uint8(p.MIDIPitch),
								Velocity: uint8(el.Velocity),
								Part:     partOf(el.Staff),
								Cents:    p.Cents,
							})
						}
					case *inkscore.GraceGroup:
						graces = append(graces, el)
					}
				}
			}
		}
	}

	for _, g := range graces {
		events = expandGrace(events, byNote, g)
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Tick != events[j].Tick {
			return events[i].Tick < events[j].Tick
		}
		return events[i].Key < events[j].Key
	})
	return events
}

// tiedDuration follows the tie chain starting at the note and sums the
// sounding length of every note in it.
func tiedDuration(score inkscore.Score, n *inkscore.Note) inkscore.TickDuration {
	total := n.Ticks
	cur := n
	for !cur.TieStart.IsNone() {
		sp := score.Spanners.Find(cur.TieStart)
		if sp == nil {
			break
		}
		next, _, ok := score.FindElement(sp.EndNote)
		if !ok {
			break
		}
		nextNote, ok := next.(*inkscore.Note)
		if !ok {
			break
		}
		total += nextNote.Ticks
		cur = nextNote
	}
	return total
}

// expandGrace turns a grace group into events. Acciaccaturas sound in a
// short window ending at the principal's tick and steal nothing;
// appoggiaturas steal the first half of the principal's duration, splitting
// it evenly among themselves.
func expandGrace(events []Event, byNote map[inkscore.EntityID]int, g *inkscore.GraceGroup) []Event {
	pi, ok := byNote[g.Principal]
	if !ok || len(g.Notes) == 0 {
		return events
	}
	principal := events[pi]
	switch g.Kind {
	case inkscore.Appoggiatura:
		stolen := principal.Duration / 2
		each := stolen / inkscore.TickDuration(len(g.Notes))
		if each == 0 {
			return events
		}
		tick := principal.Tick
		for _, n := range g.Notes {
			events = append(events, Event{
				Tick:     tick,
				Duration: each,
				Key:      uint8(n.Playback.MIDIPitch),
				Velocity: uint8(n.Velocity),
				Part:     principal.Part,
				Cents:    n.Playback.Cents,
			})
			tick += inkscore.TickPosition(each)
		}
		taken := inkscore.TickDuration(len(g.Notes)) * each
		events[pi].Tick += inkscore.TickPosition(taken)
		events[pi].Duration -= taken
	default: // acciaccatura
		start := principal.Tick - inkscore.TickPosition(graceTicks*len(g.Notes))
		if start < 0 {
			start = 0
		}
		window := float64(principal.Tick-start) / float64(len(g.Notes))
		for i, n := range g.Notes {
			events = append(events, Event{
				Tick:     start + inkscore.TickPosition(float64(i)*window),
				Duration: inkscore.TickDuration(window),
				Key:      uint8(n.Playback.MIDIPitch),
				Velocity: uint8(n.Velocity),
				Part:     principal.Part,
				Cents:    n.Playback.Cents,
			})
		}
	}
	return events
}

// staffToPart builds the staff index -> part index mapping from the parts'
// staff counts.
func staffToPart(score inkscore.Score) func(staff int) int {
	bounds := make([]int, 0, len(score.Parts))
	total := 0
	for _, p := range score.Parts {
		total += p.Staves
		bounds = append(bounds, total)
	}
	return func(staff int) int {
		for i, b := range bounds {
			if staff < b {
				return i
			}
		}
		return 0
	}
}
