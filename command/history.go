package command

import (
	"github.com/jvirtanen/inkscore"
)

// maxUndo caps the undo and redo stacks; the oldest entry falls off when a
// stack is full.
const maxUndo = 256

// History owns the working copy of a score for the lifetime of an editing
// session and is the only way to mutate it. Execute applies a command and
// publishes a fresh immutable snapshot; Undo and Redo walk the two command
// stacks. The revision counter strictly increases on every successful
// Execute, Undo and Redo and never repeats, so it is the staleness token the
// incremental layout cache compares against.
type History struct {
	working  *inkscore.MutableScore
	snapshot inkscore.Score
	undo     []Command
	redo     []Command
	revision uint64
}

// NewHistory starts an editing session over the given score.
func NewHistory(score inkscore.Score) *History {
	return &History{
		working:  inkscore.NewMutableScore(score),
		snapshot: score.Copy(),
	}
}

// Score returns the latest published snapshot. It is an independent copy,
// safe to share for reading.
func (h *History) Score() inkscore.Score { return h.snapshot }

// Revision returns the current revision counter.
func (h *History) Revision() uint64 { return h.revision }

// CanUndo reports whether there is anything to undo.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether there is anything to redo.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoDescriptions lists the undoable command labels, most recent first.
func (h *History) UndoDescriptions() []string {
	ret := make([]string, 0, len(h.undo))
	for i := len(h.undo) - 1; i >= 0; i-- {
		ret = append(ret, h.undo[i].Description())
	}
	return ret
}

// Execute applies the command. On success the command lands on the undo
// stack, the redo stack is cleared and the revision advances; on failure the
// working score, both stacks and the revision are untouched.
func (h *History) Execute(cmd Command) (Result, error) {
	res, err := cmd.Apply(h.working)
	if err != nil {
		return Result{}, err
	}
	if len(h.undo) >= maxUndo {
		h.undo = h.undo[1:]
	}
	h.undo = append(h.undo, cmd)
	h.redo = h.redo[:0]
	h.revision++
	h.snapshot = h.working.Materialize()
	return res, nil
}

// Undo reverts the most recent command. On an empty stack it is a no-op and
// the revision does not change. The returned result carries the measures the
// revert touched.
func (h *History) Undo() (Result, bool) {
	if len(h.undo) == 0 {
		return Result{}, false
	}
	cmd := h.undo[len(h.undo)-1]
	if err := cmd.Revert(h.working); err != nil {
		// A failing revert means the capture no longer matches the score,
		// which is a bug in the command; dropping it is the least bad
		// recovery as re-running it later could corrupt the model.
		h.undo = h.undo[:len(h.undo)-1]
		return Result{}, false
	}
	h.undo = h.undo[:len(h.undo)-1]
	if len(h.redo) >= maxUndo {
		h.redo = h.redo[1:]
	}
	h.redo = append(h.redo, cmd)
	h.revision++
	h.snapshot = h.working.Materialize()
	ids, all := h.working.TakeTouched()
	return Result{TouchedMeasures: ids, AllDirty: all}, true
}

// Redo re-applies the most recently undone command. On an empty stack it is
// a no-op.
func (h *History) Redo() (Result, bool) {
	if len(h.redo) == 0 {
		return Result{}, false
	}
	cmd := h.redo[len(h.redo)-1]
	res, err := cmd.Apply(h.working)
	if err != nil {
		h.redo = h.redo[:len(h.redo)-1]
		return Result{}, false
	}
	h.redo = h.redo[:len(h.redo)-1]
	if len(h.undo) >= maxUndo {
		h.undo = h.undo[1:]
	}
	h.undo = append(h.undo, cmd)
	h.revision++
	h.snapshot = h.working.Materialize()
	return res, true
}
