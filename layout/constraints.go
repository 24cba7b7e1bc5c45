// Package layout derives visual geometry from musical time. Layout is a pure
// function of an immutable score and a set of constraints: it never mutates
// the score and never stores results into it. Ticks are truth, pixels are
// derived.
package layout

type (
	// Constraints are the only recognized layout tunables. All fields are
	// pure inputs; there are no hidden globals beyond the documented
	// defaults.
	Constraints struct {
		// PageWidth is the horizontal space every system is justified to.
		PageWidth float64
		// StaffHeight is the distance from the top to the bottom staff line.
		// Line spacing is a quarter of it. Staves within a system are
		// stacked with one StaffHeight of gap between them.
		StaffHeight float64
		// SystemSpacing is the vertical gap between systems, and above the
		// first system.
		SystemSpacing float64
		// MinMeasureWidth and MaxMeasureWidth clamp the ideal width computed
		// from note density.
		MinMeasureWidth float64
		MaxMeasureWidth float64
		// MeasuresPerSystemHint caps measures packed into one system; zero
		// means no cap.
		MeasuresPerSystemHint int
	}
)

// DefaultConstraints are reasonable values for an A4-ish page at screen
// resolution.
func DefaultConstraints() Constraints {
	return Constraints{
		PageWidth:       800,
		StaffHeight:     32,
		SystemSpacing:   48,
		MinMeasureWidth: 60,
		MaxMeasureWidth: 400,
	}
}

// lineSpacing is the distance between adjacent staff lines.
func (c Constraints) lineSpacing() float64 {
	return c.StaffHeight / 4
}
