package shortcut

// Shortcut is a named, ordered list of combination strings.
//
// ID is assigned at creation time (a wall-clock millisecond timestamp) and
// is stable for the lifetime of the shortcut; zero means the shortcut is an
// unsaved candidate. Sequence order is semantically significant: it is the
// order the steps are reproduced in.
type Shortcut struct {
	ID       int64    `json:"id,omitempty"`
	Name     string   `json:"name,omitempty"`
	Sequence []string `json:"sequence"`
}

// Clone returns a deep copy of the shortcut.
func (s Shortcut) Clone() Shortcut {
	out := s
	if s.Sequence != nil {
		out.Sequence = make([]string, len(s.Sequence))
		copy(out.Sequence, s.Sequence)
	}
	return out
}

// Saved returns true if the shortcut has been assigned an identity.
func (s Shortcut) Saved() bool {
	return s.ID != 0
}

// SameSequence returns true if both shortcuts have identical sequence
// content. Sequence content, not ID, is the semantic identity within a
// collection.
func (s Shortcut) SameSequence(other Shortcut) bool {
	if len(s.Sequence) != len(other.Sequence) {
		return false
	}
	for i, step := range s.Sequence {
		if step != other.Sequence[i] {
			return false
		}
	}
	return true
}

// Merge overlays the non-empty fields of update onto existing. Used when a
// JSON edit of an existing shortcut parses successfully: parsed fields
// override, everything else is kept.
func Merge(existing, update Shortcut) Shortcut {
	out := existing.Clone()
	if update.ID != 0 {
		out.ID = update.ID
	}
	if update.Name != "" {
		out.Name = update.Name
	}
	if len(update.Sequence) > 0 {
		out.Sequence = make([]string, len(update.Sequence))
		copy(out.Sequence, update.Sequence)
	}
	return out
}
