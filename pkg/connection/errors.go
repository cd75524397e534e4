package connection

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected indicates an operation that needs a live link
	// was attempted without one.
	ErrNotConnected = errors.New("not connected")

	// ErrAlreadyConnected indicates Connect was called on a session
	// that already holds a link.
	ErrAlreadyConnected = errors.New("already connected")

	// ErrClosed indicates the manager's command queue has been shut down.
	ErrClosed = errors.New("connection manager closed")
)

// ConnectError wraps transport failures during dial or service
// discovery. Non-fatal; the drive loop retries.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string { return fmt.Sprintf("failed to connect to pump: %v", e.Err) }
func (e *ConnectError) Unwrap() error { return e.Err }

// SubscribeError wraps failures registering the telemetry notification callback.
type SubscribeError struct {
	Err error
}

func (e *SubscribeError) Error() string {
	return fmt.Sprintf("failed to subscribe to telemetry: %v", e.Err)
}
func (e *SubscribeError) Unwrap() error { return e.Err }

// WriteError wraps transport and OS-level failures delivering a
// command. The command is not guaranteed delivered; this layer does
// not retry.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return fmt.Sprintf("failed to write command: %v", e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }
