package command

import (
	"github.com/jvirtanen/inkscore"
)

type (
	// AddSlur connects two notes with a slur.
	AddSlur struct {
		Start  inkscore.EntityID `yaml:"start"`
		End    inkscore.EntityID `yaml:"end"`
		SlurID inkscore.EntityID `yaml:"slurId,omitempty"`
	}

	// AddTie connects two equal-pitched notes with a tie. The notes' tie
	// endpoint references are maintained by the mutation surface.
	AddTie struct {
		Start inkscore.EntityID `yaml:"start"`
		End   inkscore.EntityID `yaml:"end"`
		TieID inkscore.EntityID `yaml:"tieId,omitempty"`
	}

	// RemoveSpanner removes a slur or tie by id.
	RemoveSpanner struct {
		Spanner inkscore.EntityID `yaml:"spanner"`

		removed inkscore.Spanner
	}
)

func (c *AddSlur) Apply(ms *inkscore.MutableScore) (Result, error) {
	if c.SlurID.IsNone() {
		c.SlurID = inkscore.NewEntityID()
	}
	if err := ms.AddSpanner(c.SlurID, inkscore.SlurSpanner, c.Start, c.End); err != nil {
		return Result{}, err
	}
	return result(ms, map[string]inkscore.EntityID{"slur": c.SlurID}), nil
}

func (c *AddSlur) Revert(ms *inkscore.MutableScore) error {
	_, err := ms.RemoveSpanner(c.SlurID)
	return err
}

func (c *AddSlur) Description() string { return "add slur" }

func (c *AddSlur) Tag() string { return "addSlur" }

func (c *AddTie) Apply(ms *inkscore.MutableScore) (Result, error) {
	if c.TieID.IsNone() {
		c.TieID = inkscore.NewEntityID()
	}
	if err := ms.AddSpanner(c.TieID, inkscore.TieSpanner, c.Start, c.End); err != nil {
		return Result{}, err
	}
	return result(ms, map[string]inkscore.EntityID{"tie": c.TieID}), nil
}

func (c *AddTie) Revert(ms *inkscore.MutableScore) error {
	_, err := ms.RemoveSpanner(c.TieID)
	return err
}

func (c *AddTie) Description() string { return "add tie" }

func (c *AddTie) Tag() string { return "addTie" }

func (c *RemoveSpanner) Apply(ms *inkscore.MutableScore) (Result, error) {
	removed, err := ms.RemoveSpanner(c.Spanner)
	if err != nil {
		return Result{}, err
	}
	c.removed = removed
	return result(ms, nil), nil
}

func (c *RemoveSpanner) Revert(ms *inkscore.MutableScore) error {
	return ms.RestoreSpanner(c.removed)
}

func (c *RemoveSpanner) Description() string { return "remove spanner" }

func (c *RemoveSpanner) Tag() string { return "removeSpanner" }
