package layout

import (
	"reflect"
	"testing"

	"github.com/jvirtanen/inkscore"
)

func TestIncrementalReturnsCachedResult(t *testing.T) {
	score, _ := testScore(t, 3)
	c := DefaultConstraints()
	inc := NewIncremental(c)

	first := inc.Layout(score, 1, c)
	second := inc.Layout(score, 1, c)
	if first != second {
		t.Errorf("clean cache should return the identical result")
	}
}

func TestIncrementalRecomputesDirtyMeasure(t *testing.T) {
	score, measures := testScore(t, 3)
	c := DefaultConstraints()
	inc := NewIncremental(c)
	cached := inc.Layout(score, 1, c)

	// fill the first measure; its ideal width grows
	for tick := inkscore.TickPosition(0); tick < 1920; tick += 480 {
		score, _ = addQuarter(t, score, measures[0], tick, inkscore.StepC, 4)
	}
	inc.MarkDirty(measures[0])
	updated := inc.Layout(score, 2, c)

	if updated == cached {
		t.Fatalf("dirty measure should force recomputation")
	}
	full := Layout(score, c)
	if !reflect.DeepEqual(updated.Systems, full.Systems) {
		t.Errorf("incremental result diverges from a full layout")
	}
}

func TestIncrementalReusesCleanSystems(t *testing.T) {
	score, measures := testScore(t, 6)
	c := DefaultConstraints()
	c.MeasuresPerSystemHint = 2 // three systems of two
	inc := NewIncremental(c)
	cached := inc.Layout(score, 1, c)
	if len(cached.Systems) != 3 {
		t.Fatalf("expected 3 systems, got %d", len(cached.Systems))
	}

	// dirty a measure in the last system; earlier systems carry over as-is
	score, _ = addQuarter(t, score, measures[4], score.Measures[4].StartTick, inkscore.StepC, 4)
	inc.MarkDirty(measures[4])
	updated := inc.Layout(score, 2, c)

	if !reflect.DeepEqual(updated.Systems[0], cached.Systems[0]) || !reflect.DeepEqual(updated.Systems[1], cached.Systems[1]) {
		t.Errorf("systems before the dirty one should be reused unchanged")
	}
	full := Layout(score, c)
	if !reflect.DeepEqual(updated.Systems, full.Systems) {
		t.Errorf("incremental result diverges from a full layout")
	}
}

func TestIncrementalAppliesCommandResults(t *testing.T) {
	score, measures := testScore(t, 2)
	c := DefaultConstraints()
	inc := NewIncremental(c)
	inc.Layout(score, 1, c)

	score, _ = addQuarter(t, score, measures[1], 1920, inkscore.StepD, 4)
	inc.Apply([]inkscore.EntityID{measures[1]}, false)
	updated := inc.Layout(score, 2, c)
	if !reflect.DeepEqual(updated.Systems, Layout(score, c).Systems) {
		t.Errorf("applied dirty set not honored")
	}
}

func TestIncrementalAllDirtyRecomputesEverything(t *testing.T) {
	score, _ := testScore(t, 3)
	c := DefaultConstraints()
	inc := NewIncremental(c)
	inc.Layout(score, 1, c)

	ms := inkscore.NewMutableScore(score)
	if _, _, _, err := ms.RemoveMeasure(score.Measures[1].ID); err != nil {
		t.Fatalf("RemoveMeasure failed: %v", err)
	}
	shrunk := ms.Materialize()
	inc.MarkAllDirty()
	updated := inc.Layout(shrunk, 2, c)
	if !reflect.DeepEqual(updated.Systems, Layout(shrunk, c).Systems) {
		t.Errorf("structural edit not fully recomputed")
	}
}

func TestIncrementalConstraintsChangeInvalidates(t *testing.T) {
	score, _ := testScore(t, 2)
	c := DefaultConstraints()
	inc := NewIncremental(c)
	inc.Layout(score, 1, c)

	narrow := c
	narrow.PageWidth = 400
	updated := inc.Layout(score, 1, narrow)
	if !reflect.DeepEqual(updated.Systems, Layout(score, narrow).Systems) {
		t.Errorf("constraints change should trigger a full relayout")
	}
	if !near(updated.Constraints.PageWidth, 400) {
		t.Errorf("result carries constraints %+v", updated.Constraints)
	}
}

func TestIncrementalUnknownDirtyMeasureFallsBack(t *testing.T) {
	score, _ := testScore(t, 1)
	c := DefaultConstraints()
	inc := NewIncremental(c)
	inc.Layout(score, 1, c)

	// a measure the cached result never saw: appended after the last layout
	ms := inkscore.NewMutableScore(score)
	newID := inkscore.NewEntityID()
	if err := ms.AppendMeasure(newID, 1920, nil, nil, nil); err != nil {
		t.Fatalf("AppendMeasure failed: %v", err)
	}
	grown := ms.Materialize()
	inc.MarkDirty(newID)
	updated := inc.Layout(grown, 2, c)
	if !reflect.DeepEqual(updated.Systems, Layout(grown, c).Systems) {
		t.Errorf("unknown dirty measure should fall back to a full layout")
	}
}
