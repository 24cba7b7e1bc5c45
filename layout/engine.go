package layout

import (
	"github.com/jvirtanen/inkscore"
)

// Layout computes the full geometry of a score under the given constraints.
// It is deterministic: the same score and constraints always produce the
// same result.
func Layout(score inkscore.Score, c Constraints) *Result {
	res := &Result{Constraints: c}
	res.Systems = packSystems(score, c, 0, 0, c.SystemSpacing)
	res.finalize()
	return res
}

// idealWidth is proportional to note density, measured as segments per
// quarter note, clamped to the configured range. An empty measure gets the
// minimum width.
func idealWidth(m inkscore.Measure, c Constraints) float64 {
	quarters := float64(m.Duration) / inkscore.TicksPerQuarter
	density := 0.0
	if quarters > 0 {
		density = float64(len(m.Segments)) / quarters
	}
	w := c.MinMeasureWidth * (1 + density)
	if w < c.MinMeasureWidth {
		w = c.MinMeasureWidth
	}
	if c.MaxMeasureWidth > 0 && w > c.MaxMeasureWidth {
		w = c.MaxMeasureWidth
	}
	return w
}

// systemHeight is the vertical extent of a system's staff stack: staves are
// separated by one StaffHeight of gap.
func systemHeight(numStaves int, c Constraints) float64 {
	if numStaves < 1 {
		numStaves = 1
	}
	return float64(numStaves)*c.StaffHeight + float64(numStaves-1)*c.StaffHeight
}

// packSystems lays out measures from startMeasure onward into systems,
// numbering them from startSystem and stacking them from startY. Greedy
// packing: a system takes measures until the next ideal width would exceed
// the page, then the system is justified so its measures exactly fill the
// page width. A system always receives at least one measure, even one whose
// ideal width exceeds the page. The last system is justified like the rest.
func packSystems(score inkscore.Score, c Constraints, startMeasure, startSystem int, startY float64) []System {
	var systems []System
	numStaves := score.NumStaves()
	y := startY
	sysIndex := startSystem
	i := startMeasure
	for i < len(score.Measures) {
		members := []int{i}
		sum := idealWidth(score.Measures[i], c)
		j := i + 1
		for j < len(score.Measures) {
			if c.MeasuresPerSystemHint > 0 && len(members) >= c.MeasuresPerSystemHint {
				break
			}
			w := idealWidth(score.Measures[j], c)
			if sum+w > c.PageWidth {
				break
			}
			members = append(members, j)
			sum += w
			j++
		}
		scale := 1.0
		if sum > 0 {
			scale = c.PageWidth / sum
		}
		sys := System{
			Index:  sysIndex,
			Y:      y,
			Height: systemHeight(numStaves, c),
			Staves: make([]StaffLayout, numStaves),
		}
		for s := 0; s < numStaves; s++ {
			sys.Staves[s] = StaffLayout{
				Index: s,
				Clef:  score.ClefForStaff(i, s),
				Y:     y + float64(s)*2*c.StaffHeight,
			}
		}
		x := 0.0
		for _, mi := range members {
			m := score.Measures[mi]
			ideal := idealWidth(m, c)
			box := MeasureBox{
				ID:         m.ID,
				Index:      mi,
				Range:      m.Range(),
				X:          x,
				Width:      ideal * scale,
				IdealWidth: ideal,
			}
			box.Elements = measureElements(m, box, sys, c)
			sys.Measures = append(sys.Measures, box)
			x += box.Width
		}
		systems = append(systems, sys)
		y += sys.Height + c.SystemSpacing
		sysIndex++
		i = j
	}
	return systems
}

// measureElements computes the cached bounding boxes of every element in the
// measure: X by linear tick interpolation within the measure, Y from the
// element's staff and pitch.
func measureElements(m inkscore.Measure, box MeasureBox, sys System, c Constraints) []ElementBox {
	ls := c.lineSpacing()
	noteW := ls * 1.5
	var boxes []ElementBox
	for _, seg := range m.Segments {
		frac := 0.0
		if m.Duration > 0 {
			frac = float64(seg.Tick-m.StartTick) / float64(m.Duration)
		}
		x := box.X + frac*box.Width
		// voices in ascending order keeps hit-test order deterministic
		for voice := 1; voice <= 4; voice++ {
			slice, ok := seg.Voices[voice]
			if !ok {
				continue
			}
			for _, e := range slice.Elements {
				staff := sys.staff(e.Base().Staff)
				switch el := e.(type) {
				case *inkscore.Note:
					y := PitchToY(el.Pitch.Pitch, staff.Clef, staff.Y, ls)
					boxes = append(boxes, ElementBox{ID: el.ID, Bounds: Rect{X: x, Y: y - ls/2, W: noteW, H: ls}})
				case *inkscore.Chord:
					top, bottom := 0.0, 0.0
					for i, p := range el.Pitches {
						y := PitchToY(p.Pitch, staff.Clef, staff.Y, ls)
						if i == 0 || y < top {
							top = y
						}
						if i == 0 || y > bottom {
							bottom = y
						}
					}
					boxes = append(boxes, ElementBox{ID: el.ID, Bounds: Rect{X: x, Y: top - ls/2, W: noteW, H: bottom - top + ls}})
				case *inkscore.Rest:
					y := staff.Y + c.StaffHeight/2
					boxes = append(boxes, ElementBox{ID: el.ID, Bounds: Rect{X: x, Y: y - ls/2, W: noteW, H: ls}})
				case *inkscore.GraceGroup:
					w := float64(len(el.Notes)) * ls
					y := staff.Y + c.StaffHeight/2
					if len(el.Notes) > 0 {
						y = PitchToY(el.Notes[0].Pitch.Pitch, staff.Clef, staff.Y, ls)
					}
					boxes = append(boxes, ElementBox{ID: el.ID, Bounds: Rect{X: x - w, Y: y - ls/2, W: w, H: ls}})
				}
			}
		}
	}
	return boxes
}
