package sync

import (
	"errors"
	"fmt"
)

// ErrorKind is the resolved category of a sync failure, used for aggregate
// reporting. The kinds mirror how a failure should be handled: everything
// except Unauthenticated is safe to retry on the next cycle.
type ErrorKind string

const (
	KindNetwork         ErrorKind = "network"
	KindServer          ErrorKind = "server"
	KindUnexpected      ErrorKind = "unexpected"
	KindUnauthenticated ErrorKind = "unauthenticated"
)

// NetworkError wraps an I/O-level transport failure (DNS, timeout, refused
// connection). Always retry-safe.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response. Retry-safe, though a persistent one
// usually means the payload needs correction upstream.
type ServerError struct {
	Code int
	Body string
}

func (e *ServerError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("server returned status %d: %s", e.Code, e.Body)
	}
	return fmt.Sprintf("server returned status %d", e.Code)
}

// UnauthenticatedError means the session or token is no longer valid. It is
// never silently retried; callers surface it to force a re-login.
type UnauthenticatedError struct{}

func (e *UnauthenticatedError) Error() string { return "unauthenticated" }

// UnexpectedError covers deserialization failures and anything else that
// does not fit the taxonomy. Retry-safe by default, logged with detail.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string { return fmt.Sprintf("unexpected error: %v", e.Err) }
func (e *UnexpectedError) Unwrap() error { return e.Err }

// Resolve walks the error chain and returns the category a failure belongs
// to. Errors produced outside the api client resolve to KindUnexpected.
func Resolve(err error) ErrorKind {
	var (
		netErr    *NetworkError
		serverErr *ServerError
		authErr   *UnauthenticatedError
	)
	switch {
	case errors.As(err, &authErr):
		return KindUnauthenticated
	case errors.As(err, &netErr):
		return KindNetwork
	case errors.As(err, &serverErr):
		return KindServer
	}
	return KindUnexpected
}
