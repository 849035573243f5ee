package capture

import (
	"sync"
	"time"

	"github.com/dshills/keycast/internal/input/chord"
	"github.com/dshills/keycast/internal/shortcut"
)

// Controller coordinates capture states, the chord accumulator, the
// in-progress sequence, and key listener wiring.
//
// All mutation is serialized through one mutex; accumulator commits arrive
// on the debounce timer goroutine and take the same lock.
type Controller struct {
	mu sync.Mutex

	state State
	prev  State // state to restore when step editing ends

	acc    *chord.Accumulator
	source chord.Source

	editor    *shortcut.Editor
	name      string
	editing   shortcut.Shortcut // shortcut being edited, zero for a new candidate
	captured  bool              // one-shot latch for StateShortcut
	editIndex int               // step under edit while in StateStepEditing

	attached bool
}

// Option configures a Controller.
type Option func(*controllerConfig)

type controllerConfig struct {
	debounce time.Duration
	initial  Tab
}

// WithDebounce sets the accumulator debounce window.
func WithDebounce(d time.Duration) Option {
	return func(c *controllerConfig) {
		c.debounce = d
	}
}

// WithInitialTab sets the tab active when the capture surface opens.
// Default is the single-shortcut tab.
func WithInitialTab(t Tab) Option {
	return func(c *controllerConfig) {
		c.initial = t
	}
}

// NewController creates a controller reading key events from source.
// The listener is attached immediately if the initial state listens.
func NewController(source chord.Source, opts ...Option) *Controller {
	cfg := controllerConfig{
		debounce: chord.DefaultDebounce,
		initial:  TabShortcut,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Controller{
		state:  cfg.initial.state(),
		source: source,
		editor: shortcut.NewEditor(),
	}
	c.acc = chord.NewAccumulator(c.handleCommit, chord.WithDebounce(cfg.debounce))

	c.mu.Lock()
	c.resyncLocked()
	c.mu.Unlock()
	return c
}

// State returns the current capture state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Listening reports whether the key listener is currently attached.
func (c *Controller) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attached
}

// Sequence returns a copy of the in-progress sequence.
func (c *Controller) Sequence() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editor.Steps()
}

// Name returns the candidate's display name.
func (c *Controller) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

// SetName sets the candidate's display name.
func (c *Controller) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
}

// Edit loads an existing shortcut into the surface so the capture session
// produces an update for it rather than a new candidate.
func (c *Controller) Edit(s shortcut.Shortcut) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.editing = s.Clone()
	c.name = s.Name
	c.editor.Clear()
	for _, step := range s.Sequence {
		c.editor.Append(step)
	}
}

// SelectTab switches the capture surface to another mode tab. The
// in-progress sequence is cleared and the accumulator reset on every tab
// change, including re-selecting the current tab.
func (c *Controller) SelectTab(t Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = t.state()
	c.captured = false
	c.editor.Clear()
	c.acc.Reset()
	c.resyncLocked()
}

// StartRecording begins multi-step recording, clearing the sequence.
func (c *Controller) StartRecording() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRecordingIdle {
		return ErrNotIdle
	}
	c.state = StateRecordingActive
	c.editor.Clear()
	c.resyncLocked()
	return nil
}

// StopRecording ends multi-step recording, keeping the recorded sequence.
func (c *Controller) StopRecording() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRecordingActive {
		return ErrNotRecording
	}
	c.state = StateRecordingIdle
	c.acc.Reset()
	c.resyncLocked()
	return nil
}

// BeginStepEdit enters the step-editing state for the step at index.
// Key listening is suspended entirely until the edit is confirmed or
// cancelled. Returns the current step value.
func (c *Controller) BeginStepEdit(index int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateJSONEdit || c.state == StateStepEditing {
		return "", ErrEditUnavailable
	}
	value, ok := c.editor.At(index)
	if !ok {
		return "", ErrNoSuchStep
	}

	c.prev = c.state
	c.state = StateStepEditing
	c.editIndex = index
	c.acc.Reset()
	c.resyncLocked()
	return value, nil
}

// ConfirmStepEdit replaces the step under edit and restores the previous
// state. No-op outside step editing.
func (c *Controller) ConfirmStepEdit(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateStepEditing {
		return
	}
	c.editor.ReplaceAt(c.editIndex, value)
	c.state = c.prev
	c.resyncLocked()
}

// CancelStepEdit discards the edit and restores the previous state.
func (c *Controller) CancelStepEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateStepEditing {
		return
	}
	c.state = c.prev
	c.resyncLocked()
}

// DeleteStep removes a recorded step. Out-of-range indices are no-ops.
func (c *Controller) DeleteStep(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editor.DeleteAt(index)
}

// ApplyParsed merges a successfully parsed JSON edit into the session: when
// editing an existing shortcut the parsed fields override its fields,
// otherwise the parsed value becomes the candidate directly.
func (c *Controller) ApplyParsed(parsed shortcut.Shortcut) {
	c.mu.Lock()
	defer c.mu.Unlock()

	merged := parsed
	if c.editing.Saved() {
		merged = shortcut.Merge(c.editing, parsed)
	}
	c.editing = merged.Clone()
	c.name = merged.Name
	c.editor.Clear()
	for _, step := range merged.Sequence {
		c.editor.Append(step)
	}
}

// Candidate returns the shortcut this capture session currently describes.
func (c *Controller) Candidate() shortcut.Shortcut {
	c.mu.Lock()
	defer c.mu.Unlock()

	return shortcut.Shortcut{
		ID:       c.editing.ID,
		Name:     c.name,
		Sequence: c.editor.Steps(),
	}
}

// Close detaches the key listener and cancels any pending commit. The
// controller must not be used afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.acc.Reset()
	if c.attached {
		c.source.Detach()
		c.attached = false
	}
}

// handleCommit consumes a settled combination according to the current
// state. In shortcut capture the commit replaces the sequence, names the
// candidate after it, and latches capture off until the mode is re-entered.
// In active recording it appends; recording has no cutoff.
func (c *Controller) handleCommit(combo string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateShortcut:
		if c.captured {
			return
		}
		c.editor.Replace(combo)
		c.name = combo
		c.captured = true
	case StateRecordingActive:
		c.editor.Append(combo)
	default:
		// Commits can race a transition out of a listening state; they
		// are dropped once the state no longer consumes them.
	}
}

// resyncLocked makes listener attachment match the current state. Caller
// holds c.mu. Attach and detach are idempotent; the listener is never
// double-attached.
func (c *Controller) resyncLocked() {
	want := c.state.listening()
	switch {
	case want && !c.attached:
		c.source.Attach(c.acc.Handle)
		c.attached = true
	case !want && c.attached:
		c.source.Detach()
		c.attached = false
	}
}
