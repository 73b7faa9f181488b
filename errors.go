package sysresolv

import (
	"darvaza.org/core"

	"darvaza.org/sysresolv/pkg/eai"
)

// StatusOf returns the normalized status for any error produced by
// this package or the underlying resolver. nil maps to [eai.OK].
func StatusOf(err error) eai.Status {
	return eai.StatusFromError(err)
}

// ErrTimeout assembles a retryable [eai.Again] error for qName.
func ErrTimeout(qName string, err error) *eai.Error {
	if e, ok := err.(*eai.Error); ok {
		if e.Name != "" && e.Status == eai.Again {
			// pass through
			return e
		}
		out := *e
		out.Name = core.Coalesce(e.Name, qName)
		out.Status = eai.Again
		return &out
	}

	return eai.ErrAgain(qName, err)
}
