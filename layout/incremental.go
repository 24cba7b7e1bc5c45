package layout

import (
	"github.com/jvirtanen/inkscore"
)

// Incremental caches layout results keyed by score revision and constraints,
// with a measure-level dirty set so an edit recomputes only the geometry it
// can affect. Staleness handling is explicit: the caller marks dirty
// measures (the command system reports them per command) and passes the
// score's revision; nothing is recomputed implicitly on read.
type Incremental struct {
	constraints Constraints
	revision    uint64
	result      *Result
	dirty       map[inkscore.EntityID]struct{}
	allDirty    bool
}

// NewIncremental returns an empty cache; the first Layout call computes
// everything.
func NewIncremental(c Constraints) *Incremental {
	return &Incremental{constraints: c, dirty: make(map[inkscore.EntityID]struct{})}
}

// MarkDirty flags one measure as needing recomputation.
func (inc *Incremental) MarkDirty(measureID inkscore.EntityID) {
	inc.dirty[measureID] = struct{}{}
}

// MarkAllDirty flags the whole score, for structural edits that move measure
// boundaries.
func (inc *Incremental) MarkAllDirty() {
	inc.allDirty = true
}

// Apply marks the measures a command result touched.
func (inc *Incremental) Apply(touched []inkscore.EntityID, all bool) {
	if all {
		inc.MarkAllDirty()
		return
	}
	for _, id := range touched {
		inc.MarkDirty(id)
	}
}

// Layout returns the cached result unchanged when the dirty set is empty and
// both revision and constraints match; otherwise it recomputes the dirty
// measures and, because a width change can repack every subsequent measure,
// every system from the first dirty one onward. A constraints change
// invalidates everything.
func (inc *Incremental) Layout(score inkscore.Score, revision uint64, c Constraints) *Result {
	if inc.result != nil && c == inc.constraints && revision == inc.revision && len(inc.dirty) == 0 && !inc.allDirty {
		return inc.result
	}
	if inc.canRelayout(c, revision) {
		inc.result = inc.relayout(score, c)
	} else {
		inc.result = Layout(score, c)
	}
	inc.constraints = c
	inc.revision = revision
	inc.dirty = make(map[inkscore.EntityID]struct{})
	inc.allDirty = false
	return inc.result
}

// canRelayout decides whether a partial recomputation is valid: there must
// be a previous result under the same constraints, no structural edit, and
// every dirty measure must be known to the cached result. A revision bump
// with an empty dirty set means the caller did not report what changed, so
// everything is recomputed.
func (inc *Incremental) canRelayout(c Constraints, revision uint64) bool {
	if inc.result == nil || c != inc.constraints || inc.allDirty {
		return false
	}
	if len(inc.dirty) == 0 {
		return false
	}
	known := make(map[inkscore.EntityID]bool)
	for _, sys := range inc.result.Systems {
		for _, mb := range sys.Measures {
			known[mb.ID] = true
		}
	}
	for id := range inc.dirty {
		if !known[id] {
			return false
		}
	}
	return true
}

// relayout reuses every system before the first dirty one and repacks from
// there: the dirty measure's new width can shift every later measure in its
// system and spill measures across system boundaries, so everything from
// that system's first measure is recomputed.
func (inc *Incremental) relayout(score inkscore.Score, c Constraints) *Result {
	firstSys := -1
	for si, sys := range inc.result.Systems {
		for _, mb := range sys.Measures {
			if _, ok := inc.dirty[mb.ID]; ok {
				firstSys = si
				break
			}
		}
		if firstSys >= 0 {
			break
		}
	}
	if firstSys < 0 {
		return inc.result
	}
	res := &Result{Constraints: c}
	res.Systems = append(res.Systems, inc.result.Systems[:firstSys]...)
	start := inc.result.Systems[firstSys]
	res.Systems = append(res.Systems, packSystems(score, c, start.Measures[0].Index, firstSys, start.Y)...)
	res.finalize()
	return res
}
