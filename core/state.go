package core

// InvocationState tracks a single magic invocation through its lifecycle.
// The connection is always released before the terminal states are
// reported back to the host.
type InvocationState int

const (
	StateIdle InvocationState = iota
	StateParsing
	StateConnected
	StateExecuting
	StateSucceeded
	StateFailed
)

func InvocationStateFromString(s string) InvocationState {
	switch s {
	case StateIdle.String():
		return StateIdle
	case StateParsing.String():
		return StateParsing
	case StateConnected.String():
		return StateConnected
	case StateExecuting.String():
		return StateExecuting
	case StateSucceeded.String():
		return StateSucceeded
	case StateFailed.String():
		return StateFailed
	default:
		return StateIdle
	}
}

func (s InvocationState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateParsing:
		return "parsing"
	case StateConnected:
		return "connected"
	case StateExecuting:
		return "executing"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}
