package capture

import "errors"

// Sentinel errors for controller transitions.
var (
	// ErrEditUnavailable is returned when step editing is requested from a
	// state that does not allow it.
	ErrEditUnavailable = errors.New("step editing is not available in this state")

	// ErrNoSuchStep is returned when step editing targets an index that is
	// not part of the recorded sequence.
	ErrNoSuchStep = errors.New("no recorded step at that index")

	// ErrNotRecording is returned when stop is requested outside of an
	// active recording.
	ErrNotRecording = errors.New("recording is not active")

	// ErrNotIdle is returned when start is requested outside the recording
	// surface's idle state.
	ErrNotIdle = errors.New("recording can only start from the idle recording state")
)
