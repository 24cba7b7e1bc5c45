package layout

import (
	"math"

	"github.com/jvirtanen/inkscore"
)

// clefMiddleCOffset is the staff position of middle C under each clef.
// Position 0 is the bottom staff line's pitch slot under an offset of zero;
// growing positions move up one line-or-space at a time.
func clefMiddleCOffset(c inkscore.Clef) int {
	switch c {
	case inkscore.BassClef:
		return 10
	case inkscore.AltoClef:
		return 4
	case inkscore.TenorClef:
		return 6
	default: // treble
		return -2
	}
}

// staffPosition maps a pitch onto the signed integer line-or-space index for
// a clef: diatonic steps from middle C plus the clef's middle C offset.
func staffPosition(p inkscore.Pitch, clef inkscore.Clef) int {
	return int(p.Step) + 7*(p.Octave-4) + clefMiddleCOffset(clef)
}

// PitchToY converts a pitch to a vertical coordinate on a staff whose top
// line is at staffY. Position 0 sits on the bottom line (staffY plus four
// line spacings); each position above it raises Y by half a line spacing.
func PitchToY(p inkscore.Pitch, clef inkscore.Clef, staffY, lineSpacing float64) float64 {
	pos := staffPosition(p, clef)
	return staffY + 4*lineSpacing - float64(pos)*lineSpacing/2
}

// YToPitch is the inverse of PitchToY: it rounds to the nearest staff
// position and converts back to an accidental-free diatonic pitch. Callers
// apply key-signature or explicit-accidental logic separately.
func YToPitch(y float64, clef inkscore.Clef, staffY, lineSpacing float64) inkscore.Pitch {
	pos := int(math.Round((staffY + 4*lineSpacing - y) * 2 / lineSpacing))
	diatonic := pos - clefMiddleCOffset(clef)
	octave := 4
	for diatonic < 0 {
		diatonic += 7
		octave--
	}
	octave += diatonic / 7
	step := inkscore.Step(diatonic % 7)
	if octave < 0 {
		octave = 0
	}
	if octave > 9 {
		octave = 9
	}
	return inkscore.Pitch{Step: step, Octave: octave}
}

// TickToPosition locates the measure containing the tick and interpolates X
// linearly within it; Y is the requested staff's top line. The second return
// is false when the tick falls outside every measure.
func (r *Result) TickToPosition(tick inkscore.TickPosition, staff int) (Point, bool) {
	sys, box := r.measureBox(tick)
	if box == nil {
		return Point{}, false
	}
	frac := 0.0
	if d := box.Range.Duration(); d > 0 {
		frac = float64(tick-box.Range.Start) / float64(d)
	}
	return Point{X: box.X + frac*box.Width, Y: sys.staff(staff).Y}, true
}

// PositionToTick inverts TickToPosition: it finds the system whose vertical
// band contains the point, then the measure whose X range contains it, and
// inverts the linear interpolation, rounding to the nearest tick. The second
// return is false when the point is outside every measure.
func (r *Result) PositionToTick(pos Point, staff int) (inkscore.TickPosition, bool) {
	for si := range r.Systems {
		sys := &r.Systems[si]
		if pos.Y < sys.Y-r.Constraints.SystemSpacing/2 || pos.Y >= sys.Y+sys.Height+r.Constraints.SystemSpacing/2 {
			continue
		}
		for mi := range sys.Measures {
			box := &sys.Measures[mi]
			if pos.X < box.X || pos.X >= box.X+box.Width || box.Width <= 0 {
				continue
			}
			frac := (pos.X - box.X) / box.Width
			ticks := float64(box.Range.Duration())
			tick := box.Range.Start + inkscore.TickPosition(math.Round(frac*ticks))
			if tick >= box.Range.End {
				tick = box.Range.End - 1
			}
			return tick, true
		}
	}
	return 0, false
}

// HitTest returns the id of the first element in score order whose cached
// bounding rectangle contains the point, or NoEntity.
func (r *Result) HitTest(pos Point) (inkscore.EntityID, bool) {
	for _, id := range r.order {
		if r.bounds[id].Contains(pos) {
			return id, true
		}
	}
	return inkscore.NoEntity, false
}
