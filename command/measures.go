package command

import (
	"fmt"

	"github.com/jvirtanen/inkscore"
)

type (
	// AddPart appends an instrument part.
	AddPart struct {
		Name    string            `yaml:"name"`
		Staves  int               `yaml:"staves"`
		Program int               `yaml:"program,omitempty"`
		PartID  inkscore.EntityID `yaml:"partId,omitempty"`
	}

	// AddMeasure appends a measure at the end of the score. Signature
	// overrides may be nil, meaning "unchanged from the previous measure".
	AddMeasure struct {
		Duration  inkscore.TickDuration   `yaml:"duration"`
		Time      *inkscore.TimeSignature `yaml:"time,omitempty"`
		Key       *inkscore.KeySignature  `yaml:"key,omitempty"`
		Clef      *inkscore.Clef          `yaml:"clef,omitempty"`
		MeasureID inkscore.EntityID       `yaml:"measureId,omitempty"`
	}

	// RemoveMeasure removes a measure with all of its content, shifting the
	// rest of the timeline earlier. The measure, its position and every
	// spanner into or out of it are captured for revert.
	RemoveMeasure struct {
		Measure inkscore.EntityID `yaml:"measure"`

		removed  inkscore.Measure
		spanners []inkscore.Spanner
		index    int
	}

	// SetTempo inserts or replaces a tempo change at a tick.
	SetTempo struct {
		Tick inkscore.TickPosition `yaml:"tick"`
		BPM  float64               `yaml:"bpm"`

		oldBPM float64
		hadOld bool
	}
)

func (c *AddPart) Apply(ms *inkscore.MutableScore) (Result, error) {
	if c.PartID.IsNone() {
		c.PartID = inkscore.NewEntityID()
	}
	if err := ms.AddPart(c.PartID, c.Name, c.Staves, c.Program); err != nil {
		return Result{}, err
	}
	return result(ms, map[string]inkscore.EntityID{"part": c.PartID}), nil
}

func (c *AddPart) Revert(ms *inkscore.MutableScore) error {
	_, _, err := ms.RemovePart(c.PartID)
	return err
}

func (c *AddPart) Description() string {
	return fmt.Sprintf("add part %q", c.Name)
}

func (c *AddPart) Tag() string { return "addPart" }

func (c *AddMeasure) Apply(ms *inkscore.MutableScore) (Result, error) {
	if c.MeasureID.IsNone() {
		c.MeasureID = inkscore.NewEntityID()
	}
	if err := ms.AppendMeasure(c.MeasureID, c.Duration, c.Time, c.Key, c.Clef); err != nil {
		return Result{}, err
	}
	return result(ms, map[string]inkscore.EntityID{"measure": c.MeasureID}), nil
}

func (c *AddMeasure) Revert(ms *inkscore.MutableScore) error {
	_, _, _, err := ms.RemoveMeasure(c.MeasureID)
	return err
}

func (c *AddMeasure) Description() string { return "add measure" }

func (c *AddMeasure) Tag() string { return "addMeasure" }

func (c *RemoveMeasure) Apply(ms *inkscore.MutableScore) (Result, error) {
	removed, spanners, index, err := ms.RemoveMeasure(c.Measure)
	if err != nil {
		return Result{}, err
	}
	c.removed, c.spanners, c.index = removed, spanners, index
	return result(ms, nil), nil
}

func (c *RemoveMeasure) Revert(ms *inkscore.MutableScore) error {
	if err := ms.InsertMeasure(c.removed, c.index); err != nil {
		return err
	}
	for _, sp := range c.spanners {
		if err := ms.RestoreSpanner(sp); err != nil {
			return err
		}
	}
	return nil
}

func (c *RemoveMeasure) Description() string { return "remove measure" }

func (c *RemoveMeasure) Tag() string { return "removeMeasure" }

func (c *SetTempo) Apply(ms *inkscore.MutableScore) (Result, error) {
	old, had, err := ms.SetTempo(c.Tick, c.BPM)
	if err != nil {
		return Result{}, err
	}
	c.oldBPM, c.hadOld = old, had
	return result(ms, nil), nil
}

func (c *SetTempo) Revert(ms *inkscore.MutableScore) error {
	if c.hadOld {
		_, _, err := ms.SetTempo(c.Tick, c.oldBPM)
		return err
	}
	ms.RemoveTempo(c.Tick)
	return nil
}

func (c *SetTempo) Description() string {
	return fmt.Sprintf("set tempo %g BPM at tick %d", c.BPM, c.Tick)
}

func (c *SetTempo) Tag() string { return "setTempo" }
