package command

import (
	"fmt"
	"io"

	"github.com/jvirtanen/inkscore"
	"gopkg.in/yaml.v3"
)

// Document is the persisted form of a score: metadata plus the ordered
// serialized command log, optionally with a score snapshot so replay can
// skip the log prefix up to SnapshotRevision. The command log is the only
// authoritative representation; the snapshot is an optimization.
type Document struct {
	Metadata         map[string]string `yaml:"metadata,omitempty"`
	Commands         []Envelope        `yaml:"commands"`
	Snapshot         *inkscore.Score   `yaml:"snapshot,omitempty"`
	SnapshotRevision int               `yaml:"snapshotRevision,omitempty"`
}

// Append serializes a command onto the document's log. Callers append in the
// order the commands were executed.
func (d *Document) Append(cmd Command) error {
	env, err := Serialize(cmd)
	if err != nil {
		return err
	}
	d.Commands = append(d.Commands, env)
	return nil
}

// SetSnapshot records the given score as the state after the first n logged
// commands, so Rebuild starts there instead of replaying from scratch.
func (d *Document) SetSnapshot(score inkscore.Score, n int) {
	s := score.Copy()
	d.Snapshot = &s
	d.SnapshotRevision = n
}

// Rebuild reconstructs an editing session: start from the snapshot (or an
// empty score), replay the serialized commands from SnapshotRevision onward
// through Apply. A command that fails to replay aborts the rebuild; a log
// that does not replay cleanly is corrupt.
func (d *Document) Rebuild() (*History, error) {
	base := inkscore.NewScore()
	start := 0
	if d.Snapshot != nil {
		base = d.Snapshot.Copy()
		start = d.SnapshotRevision
	}
	if start < 0 || start > len(d.Commands) {
		return nil, fmt.Errorf("snapshot revision %d outside command log of %d entries", start, len(d.Commands))
	}
	h := NewHistory(base)
	for i, env := range d.Commands[start:] {
		cmd, err := Deserialize(env)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", start+i, err)
		}
		if _, err := h.Execute(cmd); err != nil {
			return nil, fmt.Errorf("replaying command %d (%s): %w", start+i, cmd.Description(), err)
		}
	}
	return h, nil
}

// Encode writes the document as yaml.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(d)
}

// DecodeDocument reads a yaml document.
func DecodeDocument(r io.Reader) (*Document, error) {
	var d Document
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}
