package wizard

// Phase is the machine phase of a wizard session. Exactly one phase holds at
// a time, so "submitting while transitioning" cannot be represented.
type Phase int

const (
	// PhaseIdle accepts navigation, edits and submission
	PhaseIdle Phase = iota
	// PhaseTransitioning holds an accepted move until Settle commits it
	PhaseTransitioning
	// PhaseSubmitting waits for the submitter
	PhaseSubmitting
	// PhaseSubmitted is terminal until Start Over
	PhaseSubmitted
)

// String returns the wire name of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTransitioning:
		return "transitioning"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// NavResult reports what a navigation request did
type NavResult int

const (
	// NavMoved means the move was accepted. With transitions enabled the
	// step changes when Settle is called.
	NavMoved NavResult = iota
	// NavBlocked means a field of the current step failed validation
	NavBlocked
	// NavIgnored means the request arrived while the wizard was busy
	NavIgnored
	// NavAtBoundary means there is no step in that direction
	NavAtBoundary
)

// String returns a short name for logs
func (r NavResult) String() string {
	switch r {
	case NavMoved:
		return "moved"
	case NavBlocked:
		return "blocked"
	case NavIgnored:
		return "ignored"
	case NavAtBoundary:
		return "at-boundary"
	default:
		return "unknown"
	}
}
