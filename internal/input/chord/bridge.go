package chord

import "sync"

// Bridge is a Source that relays key events pushed by an external feeder
// (a device hook, a remote connection) to the attached handler. Events
// arriving while no handler is attached are dropped.
//
// A single Bridge instance stands in for the global key listener: feeders
// always push into the same Bridge, and listener attach/detach is just the
// handler coming and going.
type Bridge struct {
	mu      sync.Mutex
	handler func(KeyEvent)
}

// NewBridge creates a Bridge with no handler attached.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach implements Source.
func (b *Bridge) Attach(handler func(KeyEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = handler
}

// Detach implements Source.
func (b *Bridge) Detach() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = nil
}

// Attached returns true if a handler is currently attached.
func (b *Bridge) Attached() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handler != nil
}

// Emit delivers an event to the attached handler, if any.
func (b *Bridge) Emit(ev KeyEvent) {
	b.mu.Lock()
	handler := b.handler
	b.mu.Unlock()

	if handler != nil {
		handler(ev)
	}
}
