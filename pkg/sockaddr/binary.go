package sockaddr

import (
	"encoding/binary"
	"net/netip"

	"darvaza.org/sysresolv/pkg/eai"
)

// Binary sizes of the encoded forms, mirroring the fixed
// sockaddr_in/sockaddr_in6 struct layouts.
const (
	// SizeInet is the encoded size of an IPv4 socket address.
	SizeInet = 16
	// SizeInet6 is the encoded size of an IPv6 socket address.
	SizeInet6 = 28
)

// Layout, stable across platforms. family and port big-endian,
// port in network byte order as on the wire.
//
//	inet:  family[2] port[2] addr[4] zero[8]
//	inet6: family[2] port[2] flowinfo[4] addr[16] scope[4]

// Size returns the encoded length for the address family, or 0
// if the family has no binary form.
func (sa SockAddr) Size() int {
	switch sa.Family {
	case AFInet:
		return SizeInet
	case AFInet6:
		return SizeInet6
	default:
		return 0
	}
}

// Marshal encodes the socket address into its fixed-size binary
// form, tagged by family.
func (sa SockAddr) Marshal() ([]byte, error) {
	if !sa.IsValid() {
		return nil, eai.ErrFamily(sa.String())
	}

	b := make([]byte, sa.Size())
	binary.BigEndian.PutUint16(b[0:2], uint16(sa.Family))
	binary.BigEndian.PutUint16(b[2:4], sa.Addr.Port())

	switch sa.Family {
	case AFInet:
		a4 := sa.Addr.Addr().Unmap().As4()
		copy(b[4:8], a4[:])
	default:
		a16 := sa.Addr.Addr().As16()
		copy(b[8:24], a16[:])
	}

	return b, nil
}

// Unmarshal decodes a family-tagged binary socket address. The
// buffer length must match the family's exact encoded size.
func Unmarshal(b []byte) (SockAddr, error) {
	if len(b) < 2 {
		return SockAddr{}, eai.ErrFamily("")
	}

	family := Family(binary.BigEndian.Uint16(b[0:2]))
	switch family {
	case AFInet:
		return unmarshalInet(b)
	case AFInet6:
		return unmarshalInet6(b)
	default:
		return SockAddr{}, eai.ErrFamily("")
	}
}

func unmarshalInet(b []byte) (SockAddr, error) {
	if len(b) != SizeInet {
		return SockAddr{}, eai.New(eai.Fail, "")
	}

	port := binary.BigEndian.Uint16(b[2:4])
	addr := netip.AddrFrom4(to4(b[4:8]))

	return SockAddr{
		Family: AFInet,
		Addr:   netip.AddrPortFrom(addr, port),
	}, nil
}

func unmarshalInet6(b []byte) (SockAddr, error) {
	if len(b) != SizeInet6 {
		return SockAddr{}, eai.New(eai.Fail, "")
	}

	port := binary.BigEndian.Uint16(b[2:4])
	addr := netip.AddrFrom16(to16(b[8:24]))

	return SockAddr{
		Family: AFInet6,
		Addr:   netip.AddrPortFrom(addr, port),
	}, nil
}

func to4(b []byte) (out [4]byte) {
	copy(out[:], b)
	return out
}

func to16(b []byte) (out [16]byte) {
	copy(out[:], b)
	return out
}
