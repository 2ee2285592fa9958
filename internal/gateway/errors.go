package gateway

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that the addressed account (or resource) does not
// exist server-side. It maps exactly to HTTP 404.
var ErrNotFound = errors.New("not found")

// ValidationError carries a server-side rejection. Message holds the
// server-supplied error body when present, else the status line.
type ValidationError struct {
	Message string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError reports a failure to complete the HTTP exchange at all:
// network unreachable, malformed success payload, or a client-side timeout.
type TransportError struct {
	Cause   error
	Timeout bool
}

// Error implements error.
func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("request timed out: %v", e.Cause)
	}
	return fmt.Sprintf("transport failure: %v", e.Cause)
}

// Unwrap exposes the underlying cause.
func (e *TransportError) Unwrap() error { return e.Cause }

// IsTimeout reports whether err is a client-enforced timeout.
func IsTimeout(err error) bool {
	var terr *TransportError
	return errors.As(err, &terr) && terr.Timeout
}
