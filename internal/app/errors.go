package app

import (
	"errors"
	"fmt"
)

// ErrAlreadyRunning is returned when Run is called on a running application.
var ErrAlreadyRunning = errors.New("application already running")

// InitError wraps a component initialization failure.
type InitError struct {
	Component string
	Err       error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	return fmt.Sprintf("failed to initialize %s: %v", e.Component, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}
