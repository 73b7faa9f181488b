// Package eai defines the normalized status space shared by all
// system name-resolution operations of [darvaza.org/sysresolv]
package eai

// Status identifies the outcome of a resolution attempt. Every
// distinguishable native resolver error maps to exactly one Status,
// and unmapped errors collapse into the [Fail] bucket.
type Status int

const (
	// OK indicates the resolution succeeded.
	OK Status = iota
	// AddrFamily indicates the name is known but holds no address
	// in the requested family.
	AddrFamily
	// Again indicates a temporary failure in name resolution.
	// This is the only status after which a retry may succeed.
	Again
	// BadFlags indicates an invalid combination of hints or flags.
	BadFlags
	// Fail is the terminal catch-all for native failures the
	// translation table doesn't know.
	Fail
	// Family indicates the requested address family isn't supported.
	Family
	// Memory indicates the underlying resolver ran out of memory.
	Memory
	// NoData indicates the name exists but has no usable records.
	NoData
	// NoName indicates the name, or the service when no name was
	// given, is not known.
	NoName
	// Overflow indicates a caller-supplied buffer was too small
	// for the resolved name.
	Overflow
	// Service indicates the service is not available for the
	// requested socket type.
	Service
	// SockType indicates the requested socket type isn't supported.
	SockType
	// Canceled indicates the caller abandoned the request before
	// the resolver produced an outcome.
	Canceled
)

// statusText is the single source for rendering a [Status]. Kept as
// data rather than branches so the mapping stays total and auditable.
var statusText = map[Status]string{
	OK:         "success",
	AddrFamily: "address family for name not supported",
	Again:      "temporary failure in name resolution",
	BadFlags:   "bad flags",
	Fail:       "permanent failure in name resolution",
	Family:     "address family not supported",
	Memory:     "out of memory",
	NoData:     "no address associated with name",
	NoName:     "name or service not known",
	Overflow:   "argument buffer overflow",
	Service:    "service not supported for socket type",
	SockType:   "socket type not supported",
	Canceled:   "request canceled",
}

func (status Status) String() string {
	if s, ok := statusText[status]; ok {
		return s
	}
	return statusText[Fail]
}

// Temporary tells if a retry with the same input may succeed.
func (status Status) Temporary() bool {
	return status == Again
}
