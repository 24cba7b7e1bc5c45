package inkscore

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// elementDoc is the yaml form of the element variant: exactly one of the
// pointers is set, standing in for the type tag.
type elementDoc struct {
	Note  *Note       `yaml:"note,omitempty"`
	Chord *Chord      `yaml:"chord,omitempty"`
	Rest  *Rest       `yaml:"rest,omitempty"`
	Grace *GraceGroup `yaml:"grace,omitempty"`
}

// MarshalYAML encodes the slice's polymorphic elements with per-kind keys,
// so a Score snapshot is plain yaml with no type registry.
func (v VoiceSlice) MarshalYAML() (interface{}, error) {
	docs := make([]elementDoc, 0, len(v.Elements))
	for _, e := range v.Elements {
		switch el := e.(type) {
		case *Note:
			docs = append(docs, elementDoc{Note: el})
		case *Chord:
			docs = append(docs, elementDoc{Chord: el})
		case *Rest:
			docs = append(docs, elementDoc{Rest: el})
		case *GraceGroup:
			docs = append(docs, elementDoc{Grace: el})
		default:
			return nil, fmt.Errorf("cannot serialize element type %T", e)
		}
	}
	return docs, nil
}

func (v *VoiceSlice) UnmarshalYAML(value *yaml.Node) error {
	var docs []elementDoc
	if err := value.Decode(&docs); err != nil {
		return err
	}
	v.Elements = nil
	for _, d := range docs {
		switch {
		case d.Note != nil:
			v.Elements = append(v.Elements, d.Note)
		case d.Chord != nil:
			v.Elements = append(v.Elements, d.Chord)
		case d.Rest != nil:
			v.Elements = append(v.Elements, d.Rest)
		case d.Grace != nil:
			v.Elements = append(v.Elements, d.Grace)
		default:
			return errors.New("element with no recognized kind")
		}
	}
	return nil
}
