package connection

// State is the connection manager's session state.
type State int

const (
	// StateDisconnected is the idle state, before connect or after teardown
	StateDisconnected State = iota

	// StateConnecting is active while dialing and discovering services
	StateConnecting

	// StateSubscribing is active between link establishment and telemetry subscription
	StateSubscribing

	// StateLive is active while the session is connected and subscribed
	StateLive

	// StateReconnecting is active after a liveness failure, through retry cycles
	StateReconnecting
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateSubscribing:
		return "subscribing"
	case StateLive:
		return "live"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "unknown"
	}
}
