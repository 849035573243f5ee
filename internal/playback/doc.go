// Package playback reproduces a recorded shortcut sequence through a
// synthetic-input driver.
//
// Each sequence step is either a combination ("Control+Shift+p") or literal
// text to type out; a step is treated as text when it contains no "+" and
// names no modifier. Combinations press their modifiers in order, tap the
// regular keys, and release the modifiers in reverse order.
package playback
