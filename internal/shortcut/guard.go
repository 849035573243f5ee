package shortcut

// IsDuplicate reports whether the candidate's sequence collides with a
// different existing shortcut.
//
// A collision is an existing shortcut with identical sequence content and a
// different ID. An unsaved candidate (no ID) collides with any existing
// shortcut carrying that sequence; a saved shortcut never collides with
// itself, so an update that keeps its own sequence passes.
func IsDuplicate(candidate Shortcut, existing []Shortcut) bool {
	for _, s := range existing {
		if !candidate.SameSequence(s) {
			continue
		}
		if !candidate.Saved() || candidate.ID != s.ID {
			return true
		}
	}
	return false
}
