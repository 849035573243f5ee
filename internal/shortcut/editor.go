package shortcut

// Editor performs ordered-list operations on an in-progress sequence.
// Index-based operations on out-of-range indices are defensive no-ops,
// never errors.
//
// An Editor is not safe for concurrent use; the capture controller
// serializes access to it.
type Editor struct {
	steps []string
}

// NewEditor creates an empty sequence editor.
func NewEditor() *Editor {
	return &Editor{}
}

// Append adds a combination to the end of the sequence.
func (e *Editor) Append(combo string) {
	e.steps = append(e.steps, combo)
}

// ReplaceAt replaces the element at index with value. No-op if index is
// out of bounds.
func (e *Editor) ReplaceAt(index int, value string) {
	if index < 0 || index >= len(e.steps) {
		return
	}
	e.steps[index] = value
}

// DeleteAt removes exactly the element at index, preserving the relative
// order of the rest. No-op if index is out of bounds.
func (e *Editor) DeleteAt(index int) {
	if index < 0 || index >= len(e.steps) {
		return
	}
	e.steps = append(e.steps[:index], e.steps[index+1:]...)
}

// Replace swaps the whole sequence for a single-element one.
func (e *Editor) Replace(combo string) {
	e.steps = []string{combo}
}

// Clear removes all steps.
func (e *Editor) Clear() {
	e.steps = e.steps[:0]
}

// Len returns the number of steps.
func (e *Editor) Len() int {
	return len(e.steps)
}

// At returns the step at index and whether the index was in range.
func (e *Editor) At(index int) (string, bool) {
	if index < 0 || index >= len(e.steps) {
		return "", false
	}
	return e.steps[index], true
}

// Steps returns a copy of the current sequence.
func (e *Editor) Steps() []string {
	out := make([]string, len(e.steps))
	copy(out, e.steps)
	return out
}
