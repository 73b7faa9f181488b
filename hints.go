package sysresolv

import (
	"net/netip"

	"darvaza.org/sysresolv/pkg/eai"
)

// Hints filter which candidates a forward resolution returns.
// The zero value accepts everything.
type Hints struct {
	Family   Family
	SockType SockType
	Protocol Protocol
	Flags    AIFlags
}

type sockProto struct {
	socktype SockType
	proto    Protocol
}

// Validate checks the hints describe a supported combination.
func (h Hints) Validate() error {
	switch h.Family {
	case AFUnspec, AFInet, AFInet6:
		// supported
	default:
		return eai.ErrFamily("")
	}

	if _, err := h.pairs(); err != nil {
		return err
	}
	return nil
}

// pairs expands the socket type and protocol constraints into the
// concrete (socktype, protocol) combinations a query produces.
func (h Hints) pairs() ([]sockProto, error) {
	switch h.SockType {
	case SockAny:
		switch h.Protocol {
		case ProtoAny:
			return []sockProto{
				{SockStream, ProtoTCP},
				{SockDgram, ProtoUDP},
			}, nil
		case ProtoTCP:
			return []sockProto{{SockStream, ProtoTCP}}, nil
		case ProtoUDP:
			return []sockProto{{SockDgram, ProtoUDP}}, nil
		default:
			return nil, eai.ErrService("")
		}
	case SockStream:
		if h.Protocol == ProtoAny || h.Protocol == ProtoTCP {
			return []sockProto{{SockStream, ProtoTCP}}, nil
		}
		return nil, eai.ErrService("")
	case SockDgram:
		if h.Protocol == ProtoAny || h.Protocol == ProtoUDP {
			return []sockProto{{SockDgram, ProtoUDP}}, nil
		}
		return nil, eai.ErrService("")
	}
	return nil, eai.ErrSockType("")
}

// network maps the family constraint to the [net.Resolver] network
// argument.
func (h Hints) network() string {
	switch h.Family {
	case AFInet:
		return "ip4"
	case AFInet6:
		return "ip6"
	default:
		return "ip"
	}
}

// portNetwork maps the socket type constraint to the network used
// for service name resolution.
func (h Hints) portNetwork() string {
	if h.SockType == SockDgram || h.Protocol == ProtoUDP {
		return "udp"
	}
	return "tcp"
}

// wantAddr tells if the candidate address passes the family filter,
// remapping it when AIV4Mapped applies.
func (h Hints) wantAddr(addr netip.Addr) (netip.Addr, bool) {
	addr = addr.Unmap()

	switch h.Family {
	case AFInet:
		return addr, addr.Is4()
	case AFInet6:
		if addr.Is4() {
			if h.Flags&AIV4Mapped != 0 {
				return netip.AddrFrom16(addr.As16()), true
			}
			return addr, false
		}
		return addr, true
	default:
		return addr, addr.IsValid()
	}
}
