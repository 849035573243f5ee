package chord

import (
	"strings"
	"sync"
	"time"

	"github.com/dshills/keycast/internal/input/key"
)

// DefaultDebounce is the delay after the most recent key-down before the
// pending combination is committed.
const DefaultDebounce = 200 * time.Millisecond

// CommitFunc receives the settled combination string when the debounce
// timer fires.
type CommitFunc func(combo string)

// Accumulator tracks currently-held keys and debounces key-downs into
// combination commits.
//
// Held modifiers and held regular keys are kept as ordered sets in press
// order. A combination is composed as the modifier tokens joined by "+",
// followed by the regular-key tokens joined by "+". A chord holding only
// modifiers is never committed; it is held back until a regular key joins
// or the chord is abandoned.
//
// One Accumulator exclusively owns its key sets and pending timer. The
// commit callback runs on the timer goroutine.
type Accumulator struct {
	mu       sync.Mutex
	mods     []string // held modifiers, press order, unique
	keys     []string // held regular keys, press order, unique
	pending  string   // combination as of the most recent key-down
	timer    *time.Timer
	gen      uint64 // bumped on every schedule and reset; stale fires check it
	debounce time.Duration
	commit   CommitFunc
}

// AccumulatorOption configures an Accumulator.
type AccumulatorOption func(*Accumulator)

// WithDebounce sets the debounce window. Values <= 0 keep the default.
func WithDebounce(d time.Duration) AccumulatorOption {
	return func(a *Accumulator) {
		if d > 0 {
			a.debounce = d
		}
	}
}

// NewAccumulator creates an accumulator delivering commits to the given
// callback.
func NewAccumulator(commit CommitFunc, opts ...AccumulatorOption) *Accumulator {
	a := &Accumulator{
		debounce: DefaultDebounce,
		commit:   commit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handle routes a key event to KeyDown or KeyUp.
func (a *Accumulator) Handle(ev KeyEvent) {
	if ev.Down {
		a.KeyDown(ev.Key, ev.Repeat)
		return
	}
	a.KeyUp(ev.Key)
}

// KeyDown records a key press. Auto-repeat events are ignored entirely:
// they neither mutate the held sets nor restart the timer.
//
// A key-down that yields a committable combination cancels any pending
// timer before scheduling a new one, so a stale commit can never fire
// after the chord has changed.
func (a *Accumulator) KeyDown(raw string, repeat bool) {
	if repeat {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	name := key.Normalize(raw)
	if key.IsModifier(raw) {
		a.mods = appendUnique(a.mods, name)
	} else {
		a.keys = appendUnique(a.keys, name)
	}

	combo := a.composeLocked()
	if combo == "" {
		// Modifiers only: nothing to schedule, leave any pending timer alone.
		return
	}

	a.pending = combo
	if a.timer != nil {
		a.timer.Stop()
	}
	// Stop can miss a timer that has already fired but not yet run; the
	// generation check in fire keeps such a straggler from committing the
	// new pending value early.
	a.gen++
	gen := a.gen
	a.timer = time.AfterFunc(a.debounce, func() { a.fire(gen) })
}

// KeyUp removes a released key from whichever set holds it. A pending
// timer is not affected.
func (a *Accumulator) KeyUp(raw string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	name := key.Normalize(raw)
	a.mods = remove(a.mods, name)
	a.keys = remove(a.keys, name)
}

// Reset clears both held sets and cancels any pending commit. Called on
// capture mode changes.
func (a *Accumulator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.mods = a.mods[:0]
	a.keys = a.keys[:0]
	a.pending = ""
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// Combination returns the combination implied by the currently-held keys.
// Empty if no regular key is held.
func (a *Accumulator) Combination() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.composeLocked()
}

// fire delivers the pending combination. The value committed is the one
// captured at the most recent key-down; key-ups after that do not alter it.
// A fire whose generation no longer matches was superseded by a later
// key-down or a reset and delivers nothing.
func (a *Accumulator) fire(gen uint64) {
	a.mu.Lock()
	if gen != a.gen {
		a.mu.Unlock()
		return
	}
	combo := a.pending
	a.pending = ""
	a.timer = nil
	commit := a.commit
	a.mu.Unlock()

	if combo != "" && commit != nil {
		commit(combo)
	}
}

// composeLocked builds the canonical combination string. Caller holds a.mu.
func (a *Accumulator) composeLocked() string {
	if len(a.keys) == 0 {
		return ""
	}
	if len(a.mods) == 0 {
		return strings.Join(a.keys, "+")
	}
	return strings.Join(a.mods, "+") + "+" + strings.Join(a.keys, "+")
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

func remove(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
