// internal/poller/errors.go
package poller

import "fmt"

// ConnectError reports a failed session setup. Recoverable.
type ConnectError struct {
	Endpoint string
	Err      error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("poller: connect %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// TransportError reports a failed or malformed register read.
// The session must be dropped. Recoverable.
type TransportError struct {
	Address uint16
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("poller: read 0x%04X: %v", e.Address, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
