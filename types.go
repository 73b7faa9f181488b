package sysresolv

import (
	"context"

	"darvaza.org/sysresolv/pkg/sockaddr"
)

// Family is re-exported from [darvaza.org/sysresolv/pkg/sockaddr]
// so callers of the adapter rarely need both imports.
type Family = sockaddr.Family

const (
	// AFUnspec accepts any address family.
	AFUnspec = sockaddr.AFUnspec
	// AFInet restricts a query to IPv4.
	AFInet = sockaddr.AFInet
	// AFInet6 restricts a query to IPv6.
	AFInet6 = sockaddr.AFInet6
)

// SockType constrains which socket types a forward resolution
// should produce candidates for.
type SockType int

const (
	// SockAny produces candidates for every supported socket type.
	SockAny SockType = 0
	// SockStream produces stream (TCP) candidates.
	SockStream SockType = 1
	// SockDgram produces datagram (UDP) candidates.
	SockDgram SockType = 2
)

func (st SockType) String() string {
	switch st {
	case SockAny:
		return "any"
	case SockStream:
		return "stream"
	case SockDgram:
		return "dgram"
	default:
		return "unknown"
	}
}

// Protocol constrains the transport protocol of forward resolution
// candidates. The values follow the IANA protocol numbers.
type Protocol int

const (
	// ProtoAny accepts any transport protocol.
	ProtoAny Protocol = 0
	// ProtoTCP restricts candidates to TCP.
	ProtoTCP Protocol = 6
	// ProtoUDP restricts candidates to UDP.
	ProtoUDP Protocol = 17
)

func (p Protocol) String() string {
	switch p {
	case ProtoAny:
		return "any"
	case ProtoTCP:
		return "tcp"
	case ProtoUDP:
		return "udp"
	default:
		return "unknown"
	}
}

// AIFlags alter how forward resolution treats its inputs.
type AIFlags int

const (
	// AIPassive resolves an empty host to the unspecified address,
	// for listeners, instead of the loopback address.
	AIPassive AIFlags = 1 << iota
	// AICanonName asks for the canonical name of the host on the
	// first returned candidate.
	AICanonName
	// AINumericHost requires host to be a numeric address and
	// suppresses all network lookups.
	AINumericHost
	// AINumericServ requires service to be a numeric port.
	AINumericServ
	// AIV4Mapped reports IPv4 candidates as IPv6-mapped addresses
	// on AFInet6 queries.
	AIV4Mapped
)

// NIFlags alter how reverse resolution fills its output buffers.
type NIFlags int

const (
	// NINoFQDN truncates the resolved hostname at its first label.
	NINoFQDN NIFlags = 1 << iota
	// NINumericHost writes the numeric address, suppressing the
	// network lookup.
	NINumericHost
	// NINameReqd turns the numeric-host fallback into an error
	// when no name can be resolved.
	NINameReqd
	// NINumericServ writes the numeric port instead of a service
	// name.
	NINumericServ
	// NIDgram looks the service name up in the datagram namespace.
	NIDgram
)

// Buffer capacities generous enough for any resolvable name,
// matching the platform NI_MAXHOST/NI_MAXSERV limits.
const (
	// MaxHost is a sufficient capacity for any hostname buffer.
	MaxHost = 1025
	// MaxServ is a sufficient capacity for any service name buffer.
	MaxServ = 32
)

// A Resolver adapts the system's blocking name resolution
// primitives.
type Resolver interface {
	// GetAddrInfo performs a blocking forward resolution of host
	// and service, filtered by the given hints. On success the caller
	// owns the returned [AddrList] and must release it.
	GetAddrInfo(ctx context.Context, host, service string, hints *Hints) (*AddrList, error)

	// GetNameInfo performs a blocking reverse resolution of sa,
	// filling the caller-owned host and serv buffers in place.
	GetNameInfo(ctx context.Context, sa sockaddr.SockAddr,
		host, serv []byte, flags NIFlags) (hostLen, servLen int, err error)
}
