package eai

import (
	"context"
	"errors"
	"net"

	"darvaza.org/core"
)

var (
	_ error     = (*Error)(nil)
	_ net.Error = (*Error)(nil)
)

// Error is a normalized resolution failure. Status carries the
// library-wide code, Name the queried name or address, Server the
// upstream if one is known, and Err the native error it was
// translated from, if any.
type Error struct {
	Status Status
	Name   string
	Server string
	Err    error
}

func (e *Error) Error() string {
	if e.Name == "" {
		return e.Status.String()
	}
	return "lookup " + e.Name + ": " + e.Status.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Temporary implements [net.Error]. Only [Again] conventionally
// signals that a retry may succeed.
func (e *Error) Temporary() bool { return e.Status.Temporary() }

// Timeout implements [net.Error] reporting if the native error
// was a timeout.
func (e *Error) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	if ne, ok := e.Err.(net.Error); ok {
		return ne.Timeout()
	}
	return false
}

// New assembles an [Error] for the given status and name.
func New(status Status, name string) *Error {
	return &Error{Status: status, Name: name}
}

// ErrNoName reports an unknown name or service.
func ErrNoName(name string) *Error {
	return New(NoName, name)
}

// ErrNoData reports a name without usable records.
func ErrNoData(name string) *Error {
	return New(NoData, name)
}

// ErrAddrFamily reports a name with no address in the requested family.
func ErrAddrFamily(name string) *Error {
	return New(AddrFamily, name)
}

// ErrFamily reports an unsupported address family.
func ErrFamily(name string) *Error {
	return New(Family, name)
}

// ErrService reports a service unavailable for the socket type.
func ErrService(name string) *Error {
	return New(Service, name)
}

// ErrSockType reports an unsupported socket type.
func ErrSockType(name string) *Error {
	return New(SockType, name)
}

// ErrBadFlags reports an invalid hints or flags combination.
func ErrBadFlags(name string) *Error {
	return New(BadFlags, name)
}

// ErrOverflow reports a caller buffer too small for the result.
func ErrOverflow(name string) *Error {
	return New(Overflow, name)
}

// ErrAgain assembles a retryable [Error] optionally wrapping the
// native error that caused it.
func ErrAgain(name string, err error) *Error {
	return &Error{Status: Again, Name: name, Err: err}
}

// ErrCanceled reports an abandoned request.
func ErrCanceled(name string, err error) *Error {
	return &Error{Status: Canceled, Name: name, Err: err}
}

// IsNoName checks if the given error represents an unknown name.
func IsNoName(err error) bool {
	switch e := err.(type) {
	case *Error:
		return e.Status == NoName || e.Status == NoData
	case *net.DNSError:
		return e.IsNotFound
	case nil:
		return false
	default:
		return false
	}
}

// IsOverflow checks if the given error represents a caller buffer
// too small for the result.
func IsOverflow(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Status == Overflow
	}
	return false
}

// IsTemporary checks if the given error could be retried.
func IsTemporary(err error) bool {
	if e, ok := err.(interface {
		Temporary() bool
	}); ok {
		return e.Temporary()
	}
	return false
}

// WithServer returns a copy of the error carrying the given server
// unless one was already set.
func (e *Error) WithServer(server string) *Error {
	if e == nil || e.Server != "" {
		return e
	}
	out := *e
	out.Server = core.Coalesce(e.Server, server)
	return &out
}
