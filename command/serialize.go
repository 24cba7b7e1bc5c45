package command

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Envelope is the wire form of one command: a stable type tag plus a
// key/value payload sufficient to reconstruct the command without external
// context. Captured revert state is deliberately not part of the payload;
// a deserialized command is replayed through Apply, which recaptures it.
type Envelope struct {
	Type   string    `yaml:"type"`
	Params yaml.Node `yaml:"params"`
}

// registry maps type tags to factories for deserialization. Compound is
// handled separately because its payload nests further envelopes.
var registry = map[string]func() Command{
	"addPart":        func() Command { return &AddPart{} },
	"addMeasure":     func() Command { return &AddMeasure{} },
	"removeMeasure":  func() Command { return &RemoveMeasure{} },
	"addNote":        func() Command { return &AddNote{} },
	"addChord":       func() Command { return &AddChord{} },
	"addRest":        func() Command { return &AddRest{} },
	"addGraceNotes":  func() Command { return &AddGraceNotes{} },
	"removeNote":     func() Command { return &RemoveNote{} },
	"changePitch":    func() Command { return &ChangePitch{} },
	"changeVelocity": func() Command { return &ChangeVelocity{} },
	"addSlur":        func() Command { return &AddSlur{} },
	"addTie":         func() Command { return &AddTie{} },
	"removeSpanner":  func() Command { return &RemoveSpanner{} },
	"setTempo":       func() Command { return &SetTempo{} },
}

type compoundPayload struct {
	Label    string     `yaml:"label,omitempty"`
	Commands []Envelope `yaml:"commands"`
}

// Serialize converts a command to its wire envelope.
func Serialize(c Command) (Envelope, error) {
	var node yaml.Node
	if comp, ok := c.(*Compound); ok {
		payload := compoundPayload{Label: comp.Label}
		for _, sub := range comp.Commands {
			env, err := Serialize(sub)
			if err != nil {
				return Envelope{}, err
			}
			payload.Commands = append(payload.Commands, env)
		}
		if err := node.Encode(payload); err != nil {
			return Envelope{}, err
		}
	} else {
		if _, ok := registry[c.Tag()]; !ok {
			return Envelope{}, fmt.Errorf("unregistered command type %q", c.Tag())
		}
		if err := node.Encode(c); err != nil {
			return Envelope{}, err
		}
	}
	return Envelope{Type: c.Tag(), Params: node}, nil
}

// Deserialize reconstructs a command from its wire envelope.
func Deserialize(env Envelope) (Command, error) {
	if env.Type == "compound" {
		var payload compoundPayload
		if err := env.Params.Decode(&payload); err != nil {
			return nil, fmt.Errorf("decoding compound payload: %w", err)
		}
		comp := &Compound{Label: payload.Label}
		for _, sub := range payload.Commands {
			cmd, err := Deserialize(sub)
			if err != nil {
				return nil, err
			}
			comp.Commands = append(comp.Commands, cmd)
		}
		return comp, nil
	}
	factory, ok := registry[env.Type]
	if !ok {
		return nil, fmt.Errorf("unknown command type %q", env.Type)
	}
	cmd := factory()
	if err := env.Params.Decode(cmd); err != nil {
		return nil, fmt.Errorf("decoding %s payload: %w", env.Type, err)
	}
	return cmd, nil
}
