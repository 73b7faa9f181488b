package sysresolv

import (
	"net/netip"
	"sync"
	"sync/atomic"

	"darvaza.org/sysresolv/pkg/sockaddr"
)

// AddrInfo describes one candidate socket address produced by
// forward resolution.
type AddrInfo struct {
	Family   Family
	SockType SockType
	Protocol Protocol
	Addr     netip.AddrPort

	// CanonName carries the canonical hostname on the first
	// candidate when AICanonName was requested.
	CanonName string
}

// Sockaddr returns the candidate as a family-tagged socket address.
func (ai AddrInfo) Sockaddr() sockaddr.SockAddr {
	sa, _ := sockaddr.FromAddrPort(ai.Addr)
	if ai.Family == AFInet6 {
		sa.Family = AFInet6
		sa.Addr = ai.Addr
	}
	return sa
}

// MarshalBinary encodes the candidate's socket address in its
// fixed-size binary form.
func (ai AddrInfo) MarshalBinary() ([]byte, error) {
	return ai.Sockaddr().Marshal()
}

// An AddrList owns the result of a forward resolution. The caller
// must release it with [AddrList.Close] on every path once done,
// after which the candidates must not be used.
type AddrList struct {
	closed atomic.Bool
	addrs  []AddrInfo
}

var addrListPool = sync.Pool{
	New: func() any {
		return new(AddrList)
	},
}

func newAddrList(addrs []AddrInfo) *AddrList {
	l, _ := addrListPool.Get().(*AddrList)
	l.closed.Store(false)
	l.addrs = addrs
	return l
}

// Addrs returns the ordered candidate sequence, or nil once the
// list has been released.
func (l *AddrList) Addrs() []AddrInfo {
	if l == nil || l.closed.Load() {
		return nil
	}
	return l.addrs
}

// Len returns the number of candidates still held.
func (l *AddrList) Len() int {
	return len(l.Addrs())
}

// First returns the first candidate, if any.
func (l *AddrList) First() (AddrInfo, bool) {
	if addrs := l.Addrs(); len(addrs) > 0 {
		return addrs[0], true
	}
	return AddrInfo{}, false
}

// Close releases the list. It is safe to call more than once, and
// on a nil receiver.
func (l *AddrList) Close() error {
	if l != nil && l.closed.CompareAndSwap(false, true) {
		l.addrs = nil
		addrListPool.Put(l)
	}
	return nil
}
