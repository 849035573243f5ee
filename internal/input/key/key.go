package key

// displayNames maps raw key identifiers to their display tokens.
// Keys not present here display as themselves.
var displayNames = map[string]string{
	" ":          "Space",
	"ArrowUp":    "Up",
	"ArrowDown":  "Down",
	"ArrowLeft":  "Left",
	"ArrowRight": "Right",
}

// modifierNames holds the keys classified as modifiers.
var modifierNames = map[string]bool{
	"Control": true,
	"Shift":   true,
	"Alt":     true,
	"Meta":    true,
}

// Normalize returns the display token for a raw key identifier.
// Examples: " " -> "Space", "ArrowUp" -> "Up", "a" -> "a".
func Normalize(raw string) string {
	if name, ok := displayNames[raw]; ok {
		return name
	}
	return raw
}

// IsModifier returns true exactly for Control, Shift, Alt and Meta.
func IsModifier(raw string) bool {
	return modifierNames[raw]
}
