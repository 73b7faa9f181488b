package eai

import (
	"context"
	"errors"
	"net"
	"syscall"

	"darvaza.org/core"
)

// StatusFromError translates any error coming out of the platform
// resolver into its normalized [Status]. The translation is total:
// every input maps to exactly one Status, and inputs the table
// doesn't know collapse into [Fail].
func StatusFromError(err error) Status {
	switch e := err.(type) {
	case nil:
		return OK
	case *Error:
		return e.Status
	case *net.DNSError:
		return statusFromDNSError(e)
	case *net.AddrError:
		return Family
	case net.UnknownNetworkError:
		return SockType
	default:
		return statusFromOther(err)
	}
}

func statusFromDNSError(e *net.DNSError) Status {
	switch {
	case e == nil:
		return OK
	case e.IsNotFound:
		return NoName
	case e.IsTimeout, e.IsTemporary:
		return Again
	default:
		return Fail
	}
}

func statusFromOther(err error) Status {
	switch {
	case errors.Is(err, context.Canceled):
		return Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return Again
	case errors.Is(err, syscall.ENOMEM):
		return Memory
	case isNetTimeout(err):
		return Again
	default:
		return Fail
	}
}

func isNetTimeout(err error) bool {
	if ne, ok := err.(net.Error); ok {
		return ne.Timeout()
	}
	return false
}

// Wrap translates err into an [*Error] bound to the given name.
// A nil err produces nil, and an [*Error] passes through with
// Name filled in if it was missing.
func Wrap(name string, err error) *Error {
	switch e := err.(type) {
	case nil:
		return nil
	case *Error:
		if e.Name != "" || name == "" {
			// pass through
			return e
		}
		out := *e
		out.Name = name
		return &out
	case *net.DNSError:
		return &Error{
			Status: statusFromDNSError(e),
			Name:   core.Coalesce(e.Name, name),
			Server: e.Server,
			Err:    err,
		}
	default:
		return &Error{
			Status: StatusFromError(err),
			Name:   name,
			Err:    err,
		}
	}
}
