package command

import (
	"fmt"

	"github.com/jvirtanen/inkscore"
)

// Compound runs an ordered list of sub-commands as one atomic, reversible
// unit. If any sub-command fails, the already-applied ones are reverted in
// reverse order and the first failure is reported; the working score then
// equals the score before the compound ran.
type Compound struct {
	Label    string    `yaml:"label"`
	Commands []Command `yaml:"-"`
}

func (c *Compound) Apply(ms *inkscore.MutableScore) (Result, error) {
	merged := Result{CreatedIDs: map[string]inkscore.EntityID{}}
	for i, sub := range c.Commands {
		res, err := sub.Apply(ms)
		if err != nil {
			for j := i - 1; j >= 0; j-- {
				if rerr := c.Commands[j].Revert(ms); rerr != nil {
					return Result{}, fmt.Errorf("rollback of %q failed: %v (after: %w)", c.Commands[j].Description(), rerr, err)
				}
			}
			ms.TakeTouched()
			return Result{}, fmt.Errorf("%s: %w", sub.Description(), err)
		}
		for role, id := range res.CreatedIDs {
			merged.CreatedIDs[role] = id
		}
		merged.TouchedMeasures = append(merged.TouchedMeasures, res.TouchedMeasures...)
		merged.AllDirty = merged.AllDirty || res.AllDirty
	}
	return merged, nil
}

func (c *Compound) Revert(ms *inkscore.MutableScore) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Revert(ms); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compound) Description() string {
	if c.Label != "" {
		return c.Label
	}
	return fmt.Sprintf("%d edits", len(c.Commands))
}

func (c *Compound) Tag() string { return "compound" }
