package infer

// Level indicates the severity/type of an Event.
type Level int

const (
	LevelInfo Level = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	}
	return "unknown"
}

// Event is a diagnostic message emitted during inference.
//
// Per-candidate failures never reach the caller of Infer; they are
// reported here at LevelVerbose instead.
type Event struct {
	// RunID identifies the Infer call that produced the event.
	RunID string

	Message string
	Level   Level

	// Done and Total count finished and dispatched candidate downloads.
	// Both are zero for events emitted before dispatch.
	Done  int
	Total int
}
