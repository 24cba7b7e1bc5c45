package command

import (
	"bytes"
	"testing"

	"github.com/jvirtanen/inkscore"
)

// logged executes the command and appends it to the document, mirroring how
// an editor persists its session.
func logged(t *testing.T, h *History, d *Document, cmd Command) Result {
	t.Helper()
	res, err := h.Execute(cmd)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if err := d.Append(cmd); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	return res
}

func buildSession(t *testing.T) (*History, *Document) {
	t.Helper()
	h := NewHistory(inkscore.NewScore())
	d := &Document{Metadata: map[string]string{"title": "Etude"}}

	logged(t, h, d, &AddPart{Name: "Piano", Staves: 1})
	m0 := logged(t, h, d, &AddMeasure{Duration: 1920}).CreatedIDs["measure"]
	logged(t, h, d, &AddMeasure{Duration: 1920})
	a := logged(t, h, d, noteCmd(m0, 0, inkscore.StepC, 4)).CreatedIDs["note"]
	b := logged(t, h, d, noteCmd(m0, 480, inkscore.StepC, 4)).CreatedIDs["note"]
	logged(t, h, d, &AddTie{Start: a, End: b})
	logged(t, h, d, &ChangeVelocity{Note: a, Velocity: 104})
	logged(t, h, d, &SetTempo{Tick: 0, BPM: 92})
	return h, d
}

func TestDocumentReplay(t *testing.T) {
	h, d := buildSession(t)

	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := DecodeDocument(&buf)
	if err != nil {
		t.Fatalf("DecodeDocument failed: %v", err)
	}
	if decoded.Metadata["title"] != "Etude" {
		t.Errorf("metadata lost: %v", decoded.Metadata)
	}

	rebuilt, err := decoded.Rebuild()
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	assertScoresEqual(t, h.Score(), rebuilt.Score())
	if !rebuilt.CanUndo() {
		t.Errorf("a rebuilt session should be undoable")
	}
}

func TestDocumentSnapshotSkipsPrefix(t *testing.T) {
	h, d := buildSession(t)
	// Snapshot after the first five commands; the tie, velocity and tempo
	// replay on top of it.
	d.SetSnapshot(snapshotAt(t, d, 5), 5)

	rebuilt, err := d.Rebuild()
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	assertScoresEqual(t, h.Score(), rebuilt.Score())
}

// snapshotAt replays only the first n logged commands to produce the score
// state a snapshot at that point would hold.
func snapshotAt(t *testing.T, d *Document, n int) inkscore.Score {
	t.Helper()
	prefix := &Document{Commands: d.Commands[:n]}
	h, err := prefix.Rebuild()
	if err != nil {
		t.Fatalf("prefix rebuild failed: %v", err)
	}
	return h.Score()
}

func TestDocumentSnapshotRevisionBounds(t *testing.T) {
	_, d := buildSession(t)
	d.SnapshotRevision = len(d.Commands) + 1
	s := inkscore.NewScore()
	d.Snapshot = &s
	if _, err := d.Rebuild(); err == nil {
		t.Errorf("out-of-range snapshot revision should fail")
	}
}

func TestDocumentReplayFailureAborts(t *testing.T) {
	_, d := buildSession(t)
	// Duplicate the note entry: replaying the same note id at the same spot
	// must conflict and abort the rebuild.
	d.Commands = append(d.Commands, d.Commands[3])
	if _, err := d.Rebuild(); err == nil {
		t.Errorf("corrupt log should fail to rebuild")
	}
}
