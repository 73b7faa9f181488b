// Package sockaddr handles the family-tagged binary socket addresses
// used by reverse resolution
package sockaddr

import (
	"net"
	"net/netip"

	"darvaza.org/core"

	"darvaza.org/sysresolv/pkg/eai"
)

// Family tags a [SockAddr] with its address family. The values are
// the library's own stable tags, independent of any platform's AF_*
// numbering.
type Family uint16

const (
	// AFUnspec accepts any address family.
	AFUnspec Family = 0
	// AFInet tags an IPv4 socket address.
	AFInet Family = 2
	// AFInet6 tags an IPv6 socket address.
	AFInet6 Family = 10
)

func (f Family) String() string {
	switch f {
	case AFUnspec:
		return "unspec"
	case AFInet:
		return "inet"
	case AFInet6:
		return "inet6"
	default:
		return "unknown"
	}
}

// A SockAddr is a socket address tagged by its address family.
type SockAddr struct {
	Family Family
	Addr   netip.AddrPort
}

// IsValid tells if the address is usable and consistent with its
// family tag.
func (sa SockAddr) IsValid() bool {
	addr := sa.Addr.Addr()
	switch sa.Family {
	case AFInet:
		return addr.Is4() || addr.Is4In6()
	case AFInet6:
		// IPv4-mapped addresses are valid inet6 sockaddrs
		return addr.Is6()
	default:
		return false
	}
}

func (sa SockAddr) String() string {
	return sa.Addr.String()
}

// FromAddrPort builds a [SockAddr] from a [netip.AddrPort], deriving
// the family tag from the address.
func FromAddrPort(ap netip.AddrPort) (SockAddr, error) {
	addr := ap.Addr()
	switch {
	case !addr.IsValid():
		return SockAddr{}, eai.ErrFamily(ap.String())
	case addr.Is4() || addr.Is4In6():
		return SockAddr{
			Family: AFInet,
			Addr:   netip.AddrPortFrom(addr.Unmap(), ap.Port()),
		}, nil
	default:
		return SockAddr{Family: AFInet6, Addr: ap}, nil
	}
}

// FromNetAddr builds a [SockAddr] from a [net.Addr] as returned by
// listeners and connections.
func FromNetAddr(addr net.Addr) (SockAddr, error) {
	switch a := addr.(type) {
	case *net.TCPAddr:
		return fromIPPort(a.IP, a.Port)
	case *net.UDPAddr:
		return fromIPPort(a.IP, a.Port)
	case *net.IPAddr:
		return fromIPPort(a.IP, 0)
	case nil:
		return SockAddr{}, eai.ErrFamily("")
	default:
		return FromString(addr.String())
	}
}

// FromString builds a [SockAddr] from an "address:port" or plain
// address string.
func FromString(s string) (SockAddr, error) {
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return FromAddrPort(ap)
	}

	addr, err := core.ParseAddr(s)
	if err != nil {
		return SockAddr{}, eai.ErrFamily(s)
	}
	return FromAddrPort(netip.AddrPortFrom(addr, 0))
}

func fromIPPort(ip net.IP, port int) (SockAddr, error) {
	addr, ok := netip.AddrFromSlice(ip)
	if !ok || port < 0 || port > 0xffff {
		return SockAddr{}, eai.ErrFamily(ip.String())
	}
	return FromAddrPort(netip.AddrPortFrom(addr.Unmap(), uint16(port)))
}
