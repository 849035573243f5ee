package shortcut

import "errors"

// Sentinel errors for JSON text editing. The messages are surfaced verbatim
// as inline editor feedback, so they are user-facing strings rather than
// conventional lowercase error text.
var (
	// ErrMalformedText is returned when the edited text is not well-formed JSON.
	ErrMalformedText = errors.New("Invalid JSON format")

	// ErrMissingFields is returned when parsed JSON yields no sequence,
	// from either the sequence array or the legacy keys field.
	ErrMissingFields = errors.New("JSON must contain 'sequence' and 'name' fields.")
)
