package conn

import "time"

// State enumerates the connection lifecycle states. Exactly one state is
// active at any time; transitions are driven only by the Manager.
type State int

const (
	// StateDisconnected means no transport is open and no attempt is in
	// flight.
	StateDisconnected State = iota
	// StateConnecting means a dial attempt is in progress.
	StateConnecting
	// StateConnected means a transport is open and the handshake has been
	// sent.
	StateConnected
	// StateBackoff means the last attempt failed and the manager is
	// waiting out a reconnect delay.
	StateBackoff
)

// String returns the state name used in log fields.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateBackoff:
		return "backoff"
	default:
		return "disconnected"
	}
}

// Status is a read-only snapshot of the manager's connection state. Delay is
// non-zero only in StateBackoff.
type Status struct {
	State State
	Delay time.Duration
}
