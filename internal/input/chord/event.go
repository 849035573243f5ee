package chord

// KeyEvent is a single key transition delivered by a Source.
type KeyEvent struct {
	// Key is the raw key identifier as supplied by the event source.
	Key string

	// Down is true for key-down, false for key-up.
	Down bool

	// Repeat marks OS auto-repeat key-downs. Repeats never mutate
	// accumulator state.
	Repeat bool
}

// Source is a key-event source the capture engine can attach to.
//
// Exactly one handler may be attached at a time. Attach and Detach are
// idempotent: attaching while attached replaces the handler, detaching while
// detached is a no-op. Implementations must stop delivering events as soon
// as Detach returns.
type Source interface {
	// Attach registers the handler that receives key events.
	Attach(handler func(KeyEvent))

	// Detach removes the current handler, if any.
	Detach()
}
