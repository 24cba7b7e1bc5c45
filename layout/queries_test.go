package layout

import (
	"testing"

	"github.com/jvirtanen/inkscore"
)

func TestPitchToYStaffLines(t *testing.T) {
	const staffY, ls = 100.0, 8.0
	tests := []struct {
		pitch inkscore.Pitch
		clef  inkscore.Clef
		want  float64
	}{
		// treble: E4 bottom line, B4 middle line, F5 top line
		{inkscore.Pitch{Step: inkscore.StepE, Octave: 4}, inkscore.TrebleClef, staffY + 32},
		{inkscore.Pitch{Step: inkscore.StepB, Octave: 4}, inkscore.TrebleClef, staffY + 16},
		{inkscore.Pitch{Step: inkscore.StepF, Octave: 5}, inkscore.TrebleClef, staffY},
		// middle C hangs below the treble staff on its first ledger line
		{inkscore.Pitch{Step: inkscore.StepC, Octave: 4}, inkscore.TrebleClef, staffY + 40},
		// bass: G2 bottom line, D3 middle line, A3 top line
		{inkscore.Pitch{Step: inkscore.StepG, Octave: 2}, inkscore.BassClef, staffY + 32},
		{inkscore.Pitch{Step: inkscore.StepD, Octave: 3}, inkscore.BassClef, staffY + 16},
		{inkscore.Pitch{Step: inkscore.StepA, Octave: 3}, inkscore.BassClef, staffY},
		// alto puts middle C on the middle line
		{inkscore.Pitch{Step: inkscore.StepC, Octave: 4}, inkscore.AltoClef, staffY + 16},
	}
	for _, test := range tests {
		if got := PitchToY(test.pitch, test.clef, staffY, ls); !near(got, test.want) {
			t.Errorf("PitchToY(%s, %s) = %g, expected %g", test.pitch, test.clef, got, test.want)
		}
	}
}

func TestYToPitchInvertsPitchToY(t *testing.T) {
	const staffY, ls = 0.0, 8.0
	for _, clef := range []inkscore.Clef{inkscore.TrebleClef, inkscore.BassClef, inkscore.AltoClef, inkscore.TenorClef} {
		for octave := 2; octave <= 6; octave++ {
			for step := inkscore.StepC; step <= inkscore.StepB; step++ {
				p := inkscore.Pitch{Step: step, Octave: octave}
				y := PitchToY(p, clef, staffY, ls)
				if got := YToPitch(y, clef, staffY, ls); got != p {
					t.Fatalf("YToPitch(PitchToY(%s), %s) = %s", p, clef, got)
				}
			}
		}
	}
}

func TestYToPitchRoundsToNearest(t *testing.T) {
	const staffY, ls = 0.0, 8.0
	b4 := inkscore.Pitch{Step: inkscore.StepB, Octave: 4}
	y := PitchToY(b4, inkscore.TrebleClef, staffY, ls)
	// within a quarter line spacing the same position wins
	if got := YToPitch(y+1.5, inkscore.TrebleClef, staffY, ls); got != b4 {
		t.Errorf("near-miss click resolved to %s, expected %s", got, b4)
	}
}

func TestTickPositionRoundTrip(t *testing.T) {
	score, _ := testScore(t, 2)
	res := Layout(score, DefaultConstraints())

	for _, tick := range []inkscore.TickPosition{0, 480, 1919, 1920, 3839} {
		pos, ok := res.TickToPosition(tick, 0)
		if !ok {
			t.Fatalf("TickToPosition(%d) reported no measure", tick)
		}
		back, ok := res.PositionToTick(pos, 0)
		if !ok {
			t.Fatalf("PositionToTick(%v) reported no measure", pos)
		}
		if diff := back - tick; diff < -1 || diff > 1 {
			t.Errorf("tick %d round-tripped to %d", tick, back)
		}
	}
}

func TestTickToPositionOutsideScore(t *testing.T) {
	score, _ := testScore(t, 1)
	res := Layout(score, DefaultConstraints())
	if _, ok := res.TickToPosition(1920, 0); ok {
		t.Errorf("tick at score end should have no position")
	}
	if _, ok := res.PositionToTick(Point{X: -10, Y: -500}, 0); ok {
		t.Errorf("point above the page should have no tick")
	}
}

func TestPositionToTickClampsToMeasure(t *testing.T) {
	score, _ := testScore(t, 1)
	res := Layout(score, DefaultConstraints())
	box := res.Systems[0].Measures[0]
	// just inside the right edge rounds up to the measure end, which is
	// clamped back to the last contained tick
	pos := Point{X: box.X + box.Width - 1e-6, Y: res.Systems[0].Y}
	tick, ok := res.PositionToTick(pos, 0)
	if !ok {
		t.Fatalf("edge point reported no tick")
	}
	if tick != 1919 {
		t.Errorf("edge tick %d, expected 1919", tick)
	}
}

func TestHitTest(t *testing.T) {
	score, measures := testScore(t, 1)
	score, noteID := addQuarter(t, score, measures[0], 0, inkscore.StepB, 4)
	res := Layout(score, DefaultConstraints())

	bounds, _ := res.ElementBounds(noteID)
	hit, ok := res.HitTest(Point{X: bounds.X + bounds.W/2, Y: bounds.Y + bounds.H/2})
	if !ok || hit != noteID {
		t.Errorf("HitTest inside the note returned %v/%v", hit, ok)
	}
	if _, ok := res.HitTest(Point{X: bounds.X + bounds.W/2, Y: bounds.Y + 200}); ok {
		t.Errorf("HitTest far below the staff should miss")
	}
}
