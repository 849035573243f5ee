package playback

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultInterval is the pause between sequence steps.
const DefaultInterval = 100 * time.Millisecond

// modifierAliases are the names treated as modifiers inside a combination,
// lowercase. Aliases cover the vocabularies companions have historically
// sent alongside the canonical Control/Shift/Alt/Meta tokens.
var modifierAliases = map[string]bool{
	"ctrl":    true,
	"control": true,
	"shift":   true,
	"alt":     true,
	"cmd":     true,
	"command": true,
	"meta":    true,
}

// Player plays shortcut sequences through a driver.
type Player struct {
	driver   Driver
	interval time.Duration
	sleep    func(time.Duration)
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithInterval sets the pause between steps. Values <= 0 keep the default.
func WithInterval(d time.Duration) PlayerOption {
	return func(p *Player) {
		if d > 0 {
			p.interval = d
		}
	}
}

// withSleep overrides the inter-step sleep. Used by tests.
func withSleep(fn func(time.Duration)) PlayerOption {
	return func(p *Player) {
		p.sleep = fn
	}
}

// NewPlayer creates a player over the given driver.
func NewPlayer(driver Driver, opts ...PlayerOption) *Player {
	p := &Player{
		driver:   driver,
		interval: DefaultInterval,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play reproduces the sequence step by step, pausing between steps. A
// failing step does not abort the rest of the sequence; all step errors
// are joined into the returned error.
func (p *Player) Play(sequence []string) error {
	var errs []error
	for i, step := range sequence {
		if i > 0 {
			p.sleep(p.interval)
		}
		if err := p.playStep(step); err != nil {
			errs = append(errs, fmt.Errorf("step %d %q: %w", i, step, err))
		}
	}
	return errors.Join(errs...)
}

// playStep executes one sequence step.
func (p *Player) playStep(step string) error {
	if IsText(step) {
		return p.driver.Type(step)
	}

	keys := splitCombination(step)

	// Press modifiers first, in combination order.
	var held []string
	var errs []error
	for _, k := range keys {
		if !isModifierName(k) {
			continue
		}
		if err := p.driver.KeyDown(k); err != nil {
			errs = append(errs, err)
			continue
		}
		held = append(held, k)
	}

	// Tap the regular keys.
	for _, k := range keys {
		if isModifierName(k) {
			continue
		}
		if err := p.driver.Tap(k); err != nil {
			errs = append(errs, err)
		}
	}

	// Release modifiers in reverse order.
	for i := len(held) - 1; i >= 0; i-- {
		if err := p.driver.KeyUp(held[i]); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// IsText reports whether a sequence step should be typed as literal text
// rather than executed as a combination: no "+" and no modifier name.
func IsText(step string) bool {
	if strings.Contains(step, "+") {
		return false
	}
	lower := strings.ToLower(step)
	for name := range modifierAliases {
		if strings.Contains(lower, name) {
			return false
		}
	}
	return true
}

func splitCombination(step string) []string {
	parts := strings.Split(step, "+")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isModifierName(k string) bool {
	return modifierAliases[strings.ToLower(k)]
}
