package verify

// Outcome is the result of checking one candidate against a target digest.
type Outcome int

const (
	NoMatch Outcome = iota
	Match
	// MalformedTarget means the target digest could not be parsed.
	MalformedTarget
	// BackendFailure covers every other error raised by the hashing backend.
	BackendFailure
)

func (o Outcome) Matched() bool {
	return o == Match
}

func (o Outcome) String() string {
	switch o {
	case Match:
		return "match"
	case MalformedTarget:
		return "malformed-target"
	case BackendFailure:
		return "backend-failure"
	default:
		return "no-match"
	}
}
