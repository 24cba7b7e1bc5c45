package layout

import (
	"github.com/jvirtanen/inkscore"
)

type (
	// Point is a position in page coordinates, origin top-left, Y growing
	// downward.
	Point struct {
		X float64
		Y float64
	}

	// Rect is an axis-aligned bounding rectangle.
	Rect struct {
		X float64
		Y float64
		W float64
		H float64
	}

	// StaffLayout is one staff's vertical placement within a system. Y is
	// the top staff line.
	StaffLayout struct {
		Index int
		Clef  inkscore.Clef
		Y     float64
	}

	// ElementBox is one element's cached bounding rectangle, used for
	// hit-testing.
	ElementBox struct {
		ID     inkscore.EntityID
		Bounds Rect
	}

	// MeasureBox is one measure's horizontal placement. Width is the
	// justified width; IdealWidth the pre-justification one, kept so
	// incremental relayout can detect packing changes.
	MeasureBox struct {
		ID         inkscore.EntityID
		Index      int
		Range      inkscore.TimeRange
		X          float64
		Width      float64
		IdealWidth float64
		Elements   []ElementBox
	}

	// System is one row of measures spanning the page, with a fixed staff
	// stack.
	System struct {
		Index    int
		Y        float64
		Height   float64
		Staves   []StaffLayout
		Measures []MeasureBox
	}

	// Result is an immutable layout snapshot: systems of measures of staves
	// plus the element-bounds index. Safe to share for reading.
	Result struct {
		Constraints Constraints
		Systems     []System

		bounds map[inkscore.EntityID]Rect
		order  []inkscore.EntityID // element ids in score walk order, for deterministic hit-testing
	}
)

// Contains reports whether the point falls inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// finalize builds the flat bounds index from the systems.
func (r *Result) finalize() {
	r.bounds = make(map[inkscore.EntityID]Rect)
	r.order = r.order[:0]
	for _, sys := range r.Systems {
		for _, mb := range sys.Measures {
			for _, eb := range mb.Elements {
				r.bounds[eb.ID] = eb.Bounds
				r.order = append(r.order, eb.ID)
			}
		}
	}
}

// ElementBounds returns the cached bounding rectangle of an element.
func (r *Result) ElementBounds(id inkscore.EntityID) (Rect, bool) {
	b, ok := r.bounds[id]
	return b, ok
}

// measureBox locates the measure box containing the tick.
func (r *Result) measureBox(tick inkscore.TickPosition) (*System, *MeasureBox) {
	for si := range r.Systems {
		for mi := range r.Systems[si].Measures {
			if r.Systems[si].Measures[mi].Range.Contains(tick) {
				return &r.Systems[si], &r.Systems[si].Measures[mi]
			}
		}
	}
	return nil, nil
}

// staff returns the staff layout for the index within the system; falls back
// to the first staff so a query against a one-staff score with a stale staff
// index still lands somewhere sensible.
func (s *System) staff(index int) StaffLayout {
	if index >= 0 && index < len(s.Staves) {
		return s.Staves[index]
	}
	if len(s.Staves) > 0 {
		return s.Staves[0]
	}
	return StaffLayout{}
}
