package playback

// Driver produces synthetic key input on the host. Implementations are
// platform-specific and injected; the engine itself never talks to the OS.
type Driver interface {
	// KeyDown presses and holds a key.
	KeyDown(key string) error

	// KeyUp releases a held key.
	KeyUp(key string) error

	// Tap presses and releases a key.
	Tap(key string) error

	// Type types literal text.
	Type(text string) error
}

// NopDriver discards all input. Used when no platform driver is wired.
type NopDriver struct{}

// KeyDown implements Driver.
func (NopDriver) KeyDown(string) error { return nil }

// KeyUp implements Driver.
func (NopDriver) KeyUp(string) error { return nil }

// Tap implements Driver.
func (NopDriver) Tap(string) error { return nil }

// Type implements Driver.
func (NopDriver) Type(string) error { return nil }
