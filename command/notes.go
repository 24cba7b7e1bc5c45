package command

import (
	"fmt"

	"github.com/jvirtanen/inkscore"
)

// Creation commands carry their generated entity id in the serialized
// payload: the id is generated on the first Apply and reused on every
// re-apply, so ids referenced by later commands in a log stay valid across
// undo/redo and replay.

type (
	// AddNote places a single note at a measure/voice/tick position.
	AddNote struct {
		Measure  inkscore.EntityID        `yaml:"measure"`
		Voice    int                      `yaml:"voice"`
		Staff    int                      `yaml:"staff"`
		Tick     inkscore.TickPosition    `yaml:"tick"`
		Pitch    inkscore.NotatedPitch    `yaml:"pitch"`
		Playback *inkscore.PlaybackPitch  `yaml:"playback,omitempty"`
		Duration inkscore.WrittenDuration `yaml:"duration"`
		Velocity int                      `yaml:"velocity,omitempty"`
		NoteID   inkscore.EntityID        `yaml:"noteId,omitempty"`
	}

	// AddChord places several simultaneous pitches sharing one duration.
	AddChord struct {
		Measure  inkscore.EntityID        `yaml:"measure"`
		Voice    int                      `yaml:"voice"`
		Staff    int                      `yaml:"staff"`
		Tick     inkscore.TickPosition    `yaml:"tick"`
		Pitches  []inkscore.NotatedPitch  `yaml:"pitches"`
		Duration inkscore.WrittenDuration `yaml:"duration"`
		Velocity int                      `yaml:"velocity,omitempty"`
		ChordID  inkscore.EntityID        `yaml:"chordId,omitempty"`
	}

	// AddRest places a rest.
	AddRest struct {
		Measure     inkscore.EntityID        `yaml:"measure"`
		Voice       int                      `yaml:"voice"`
		Staff       int                      `yaml:"staff"`
		Tick        inkscore.TickPosition    `yaml:"tick"`
		Duration    inkscore.WrittenDuration `yaml:"duration"`
		MeasureRest bool                     `yaml:"measureRest,omitempty"`
		RestID      inkscore.EntityID        `yaml:"restId,omitempty"`
	}

	// AddGraceNotes attaches a grace group to a principal note.
	AddGraceNotes struct {
		Principal inkscore.EntityID       `yaml:"principal"`
		Kind      inkscore.GraceKind      `yaml:"kind"`
		Pitches   []inkscore.NotatedPitch `yaml:"pitches"`
		GroupID   inkscore.EntityID       `yaml:"groupId,omitempty"`
		NoteIDs   []inkscore.EntityID     `yaml:"noteIds,omitempty"`
	}

	// RemoveNote removes any element by id, capturing its full payload and
	// the spanners that referenced it so Revert restores everything exactly.
	RemoveNote struct {
		Note inkscore.EntityID `yaml:"note"`

		removed inkscore.RemovedElement
	}

	// ChangePitch replaces a note's notated and playback pitches. The prior
	// pair is captured at apply time, so an undo brings back a microtonal
	// override along with the spelling.
	ChangePitch struct {
		Note     inkscore.EntityID       `yaml:"note"`
		Pitch    inkscore.NotatedPitch   `yaml:"pitch"`
		Playback *inkscore.PlaybackPitch `yaml:"playback,omitempty"`

		oldPitch    inkscore.NotatedPitch
		oldPlayback inkscore.PlaybackPitch
	}

	// ChangeVelocity replaces a note's velocity.
	ChangeVelocity struct {
		Note     inkscore.EntityID `yaml:"note"`
		Velocity int               `yaml:"velocity"`

		oldVelocity int
	}
)

func (c *AddNote) Apply(ms *inkscore.MutableScore) (Result, error) {
	if c.NoteID.IsNone() {
		c.NoteID = inkscore.NewEntityID()
	}
	if err := ms.AddNote(c.NoteID, c.Measure, c.Voice, c.Staff, c.Tick, c.Pitch, c.Playback, c.Duration, c.Velocity); err != nil {
		return Result{}, err
	}
	return result(ms, map[string]inkscore.EntityID{"note": c.NoteID}), nil
}

func (c *AddNote) Revert(ms *inkscore.MutableScore) error {
	_, err := ms.RemoveElement(c.NoteID)
	return err
}

func (c *AddNote) Description() string {
	return fmt.Sprintf("add note %s", c.Pitch.Pitch)
}

func (c *AddNote) Tag() string { return "addNote" }

func (c *AddChord) Apply(ms *inkscore.MutableScore) (Result, error) {
	if c.ChordID.IsNone() {
		c.ChordID = inkscore.NewEntityID()
	}
	if err := ms.AddChord(c.ChordID, c.Measure, c.Voice, c.Staff, c.Tick, c.Pitches, c.Duration, c.Velocity); err != nil {
		return Result{}, err
	}
	return result(ms, map[string]inkscore.EntityID{"chord": c.ChordID}), nil
}

func (c *AddChord) Revert(ms *inkscore.MutableScore) error {
	_, err := ms.RemoveElement(c.ChordID)
	return err
}

func (c *AddChord) Description() string {
	return fmt.Sprintf("add chord (%d notes)", len(c.Pitches))
}

func (c *AddChord) Tag() string { return "addChord" }

func (c *AddRest) Apply(ms *inkscore.MutableScore) (Result, error) {
	if c.RestID.IsNone() {
		c.RestID = inkscore.NewEntityID()
	}
	if err := ms.AddRest(c.RestID, c.Measure, c.Voice, c.Staff, c.Tick, c.Duration, c.MeasureRest); err != nil {
		return Result{}, err
	}
	return result(ms, map[string]inkscore.EntityID{"rest": c.RestID}), nil
}

func (c *AddRest) Revert(ms *inkscore.MutableScore) error {
	_, err := ms.RemoveElement(c.RestID)
	return err
}

func (c *AddRest) Description() string { return "add rest" }

func (c *AddRest) Tag() string { return "addRest" }

func (c *AddGraceNotes) Apply(ms *inkscore.MutableScore) (Result, error) {
	if c.GroupID.IsNone() {
		c.GroupID = inkscore.NewEntityID()
	}
	for len(c.NoteIDs) < len(c.Pitches) {
		c.NoteIDs = append(c.NoteIDs, inkscore.NewEntityID())
	}
	if err := ms.AddGraceGroup(c.GroupID, c.Principal, c.Kind, c.Pitches, c.NoteIDs); err != nil {
		return Result{}, err
	}
	return result(ms, map[string]inkscore.EntityID{"graceGroup": c.GroupID}), nil
}

func (c *AddGraceNotes) Revert(ms *inkscore.MutableScore) error {
	_, err := ms.RemoveElement(c.GroupID)
	return err
}

func (c *AddGraceNotes) Description() string {
	return fmt.Sprintf("add %d grace notes", len(c.Pitches))
}

func (c *AddGraceNotes) Tag() string { return "addGraceNotes" }

func (c *RemoveNote) Apply(ms *inkscore.MutableScore) (Result, error) {
	removed, err := ms.RemoveElement(c.Note)
	if err != nil {
		return Result{}, err
	}
	c.removed = removed
	return result(ms, nil), nil
}

func (c *RemoveNote) Revert(ms *inkscore.MutableScore) error {
	return ms.RestoreElement(c.removed)
}

func (c *RemoveNote) Description() string { return "remove note" }

func (c *RemoveNote) Tag() string { return "removeNote" }

func (c *ChangePitch) Apply(ms *inkscore.MutableScore) (Result, error) {
	playback := c.Pitch.Pitch.Playback()
	if c.Playback != nil {
		playback = *c.Playback
	}
	oldPitch, oldPlayback, err := ms.ChangePitch(c.Note, c.Pitch, playback)
	if err != nil {
		return Result{}, err
	}
	c.oldPitch, c.oldPlayback = oldPitch, oldPlayback
	return result(ms, nil), nil
}

func (c *ChangePitch) Revert(ms *inkscore.MutableScore) error {
	_, _, err := ms.ChangePitch(c.Note, c.oldPitch, c.oldPlayback)
	return err
}

func (c *ChangePitch) Description() string {
	return fmt.Sprintf("change pitch to %s", c.Pitch.Pitch)
}

func (c *ChangePitch) Tag() string { return "changePitch" }

func (c *ChangeVelocity) Apply(ms *inkscore.MutableScore) (Result, error) {
	old, err := ms.ChangeVelocity(c.Note, c.Velocity)
	if err != nil {
		return Result{}, err
	}
	c.oldVelocity = old
	return result(ms, nil), nil
}

func (c *ChangeVelocity) Revert(ms *inkscore.MutableScore) error {
	_, err := ms.ChangeVelocity(c.Note, c.oldVelocity)
	return err
}

func (c *ChangeVelocity) Description() string {
	return fmt.Sprintf("set velocity %d", c.Velocity)
}

func (c *ChangeVelocity) Tag() string { return "changeVelocity" }
