package search

import "time"

type State int32

const (
	Running State = iota
	Found
	Exhausted
	TimedOut
	Cancelled
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	case TimedOut:
		return "timed-out"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func (s State) Terminal() bool {
	return s != Running
}

// Outcome is produced once, when the search reaches a terminal state.
type Outcome struct {
	State     State
	Plaintext string
	Attempts  int64
	Elapsed   time.Duration
	Malformed int64
	Failures  int64
}

func (o Outcome) Found() bool {
	return o.State == Found
}

// Progress is a point-in-time view of a running search.
type Progress struct {
	State    State
	Length   int
	Attempts int64
	// Keyspace is zero when the total size overflows uint64.
	Keyspace    uint64
	Elapsed     time.Duration
	BusyWorkers int64
}
