// Package capture implements the finite-state controller over the three
// mutually exclusive capture surfaces (single shortcut, multi-step
// recording, JSON editing) plus the transient step-editing state.
//
// The controller owns the chord accumulator and the in-progress sequence,
// decides what an accumulator commit means in the current state, and keeps
// the global key listener attached exactly when the current state listens
// for keys. Listener wiring is resynchronized on every transition through a
// single idempotent step rather than per-condition attach/detach calls.
package capture
