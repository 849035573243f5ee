package capture

// State identifies the controller's current capture state.
type State int

const (
	// StateShortcut captures a single combination; the first commit is
	// taken and further capture is disabled until the mode is re-entered.
	StateShortcut State = iota

	// StateRecordingIdle is the recording surface before recording starts.
	// Keys are not listened to.
	StateRecordingIdle

	// StateRecordingActive appends every commit to the sequence until
	// recording is explicitly stopped.
	StateRecordingActive

	// StateJSONEdit is direct text editing of the shortcut. Keys are not
	// listened to.
	StateJSONEdit

	// StateStepEditing is in-place text editing of one recorded step. Key
	// listening is suspended entirely while the edit field is focused.
	StateStepEditing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateShortcut:
		return "shortcut"
	case StateRecordingIdle:
		return "recording-idle"
	case StateRecordingActive:
		return "recording-active"
	case StateJSONEdit:
		return "json-edit"
	case StateStepEditing:
		return "step-editing"
	default:
		return "unknown"
	}
}

// listening reports whether the global key listener belongs attached in
// this state.
func (s State) listening() bool {
	return s == StateShortcut || s == StateRecordingActive
}

// Tab identifies one of the mode tabs on the capture surface.
type Tab int

const (
	// TabShortcut selects single-combination capture.
	TabShortcut Tab = iota

	// TabRecording selects multi-step recording.
	TabRecording

	// TabJSON selects direct JSON editing.
	TabJSON
)

// state returns the state a freshly selected tab lands in.
func (t Tab) state() State {
	switch t {
	case TabRecording:
		return StateRecordingIdle
	case TabJSON:
		return StateJSONEdit
	default:
		return StateShortcut
	}
}
