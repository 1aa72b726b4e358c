package sidecar

// EventKind discriminates entries on the launch event stream.
type EventKind int

const (
	// EventStdout carries one stdout line, newline stripped.
	EventStdout EventKind = iota
	// EventStderr carries one stderr line, newline stripped.
	EventStderr
	// EventError carries a pipe I/O error; the process may still be running.
	EventError
	// EventTerminated is the final event before the stream closes.
	EventTerminated
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStdout:
		return "stdout"
	case EventStderr:
		return "stderr"
	case EventError:
		return "error"
	case EventTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// ExitStatus describes how the backend process ended.
type ExitStatus struct {
	// Code is the exit code, or -1 when the process was killed by a signal.
	Code int
	// Signal describes the terminating signal (e.g. "signal: killed"),
	// empty for a normal exit.
	Signal string
}

// Event is one entry on the launch event stream. Kind selects which of the
// remaining fields is populated.
type Event struct {
	Kind EventKind
	Line []byte
	Err  error
	Exit *ExitStatus
}
