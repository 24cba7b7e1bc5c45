// Package command is the exclusive mutation path for a score: typed,
// reversible, serializable operations applied through a history that supports
// undo and redo. Commands reference measures, voices, ticks and entity ids,
// never positions in slices, so a serialized command log replays correctly
// in any environment.
package command

import (
	"github.com/jvirtanen/inkscore"
)

type (
	// Result reports a successful application: a mapping from logical role
	// (e.g. "note", "measure") to the generated entity id, for chaining and
	// selection, plus the measures the command touched, consumed by the
	// incremental layout cache.
	Result struct {
		CreatedIDs      map[string]inkscore.EntityID
		TouchedMeasures []inkscore.EntityID
		AllDirty        bool
	}

	// Command is a single reversible mutation. Apply performs it against the
	// working copy; on failure the working copy is left unchanged. Apply
	// must capture whatever prior state it overwrites so that Revert is
	// stateless thereafter and undoes the mutation exactly. A command
	// re-applied after a revert recreates its entities under the same ids.
	Command interface {
		Apply(ms *inkscore.MutableScore) (Result, error)
		Revert(ms *inkscore.MutableScore) error
		// Description is a human-readable label for history UIs.
		Description() string
		// Tag is the stable type tag used by the wire format.
		Tag() string
	}
)

// result collects the touched-measure set from the working copy after a
// successful mutation.
func result(ms *inkscore.MutableScore, roles map[string]inkscore.EntityID) Result {
	touched, all := ms.TakeTouched()
	return Result{CreatedIDs: roles, TouchedMeasures: touched, AllDirty: all}
}
