package store

import "errors"

// ErrNotFound is returned by Update and Delete when no shortcut carries the
// given id.
var ErrNotFound = errors.New("shortcut not found")
