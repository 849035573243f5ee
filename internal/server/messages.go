package server

// Incoming message envelope; Type selects the concrete shape.
type baseMsg struct {
	Type string `json:"type"`
}

// deviceInfoMsg registers the companion under a display name.
type deviceInfoMsg struct {
	Type       string `json:"type"`
	DeviceName string `json:"device_name"`
}

// executeMsg asks the daemon to play the identified shortcut.
type executeMsg struct {
	Type       string `json:"type"`
	ShortcutID int64  `json:"shortcut_id"`
}

// keyEventMsg streams a companion key transition into the capture engine.
type keyEventMsg struct {
	Type   string `json:"type"`
	Key    string `json:"key"`
	Down   bool   `json:"down"`
	Repeat bool   `json:"repeat,omitempty"`
}

// Device is a connected companion as shown on the pairing surface.
type Device struct {
	Name      string `json:"name"`
	Connected bool   `json:"connected"`
}
