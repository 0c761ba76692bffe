package rpc

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when no reply arrived within the call window.
	ErrTimeout = errors.New("rpc: timed out waiting for reply")

	// ErrDecode is returned when a reply arrived but could not be parsed.
	ErrDecode = errors.New("rpc: malformed reply")

	// ErrTransport is returned when the request could not be published.
	ErrTransport = errors.New("rpc: publish failed")

	// ErrShutdown is returned when the client is shutting down.
	ErrShutdown = errors.New("rpc: client shut down")
)

// RemoteError carries a failure reported by the remote handler, as opposed
// to a transport or timeout failure on the calling side.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("rpc: remote error: %s", e.Message)
}
