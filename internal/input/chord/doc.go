// Package chord turns a live stream of key-down/key-up events into settled
// canonical combination strings.
//
// An Accumulator tracks which modifier and regular keys are currently held
// (in press order) and debounces rapid key-downs so that a quickly typed
// chord collapses into a single committed combination reflecting its final
// state. Commits are delivered to a single consumer callback; the consumer
// decides what a commit means in the current capture mode.
//
// The Source interface abstracts the key-event source so the engine can be
// driven by a real input device, a remote companion connection, or a
// scripted test harness. A Bridge is the default Source implementation: a
// relay that forwards events only while a handler is attached.
package chord
