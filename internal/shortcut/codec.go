package shortcut

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Serialize renders a shortcut as pretty-printed JSON suitable for direct
// text editing. The output round-trips through Parse.
func Serialize(s Shortcut) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("serialize shortcut: %w", err)
	}
	return string(pretty.Pretty(data)), nil
}

// Parse parses edited JSON text back into a shortcut.
//
// Text that is not well-formed JSON fails with ErrMalformedText. Well-formed
// JSON that supplies no sequence, neither a sequence array nor the legacy
// keys field, fails with ErrMissingFields; a name alone is not a shortcut.
// The legacy single-combination shape {id?, keys} is accepted and mapped to
// a one-element sequence.
func Parse(text string) (Shortcut, error) {
	if !gjson.Valid(text) {
		return Shortcut{}, ErrMalformedText
	}

	root := gjson.Parse(text)
	if !root.IsObject() {
		return Shortcut{}, ErrMissingFields
	}

	s := Shortcut{
		ID:   root.Get("id").Int(),
		Name: root.Get("name").String(),
	}

	seq := root.Get("sequence")
	keys := root.Get("keys")
	switch {
	case seq.IsArray():
		for _, step := range seq.Array() {
			s.Sequence = append(s.Sequence, step.String())
		}
	case keys.Exists() && keys.String() != "":
		s.Sequence = []string{keys.String()}
	default:
		return Shortcut{}, ErrMissingFields
	}

	return s, nil
}
