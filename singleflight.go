package sysresolv

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"darvaza.org/sysresolv/pkg/eai"
	"darvaza.org/sysresolv/pkg/sockaddr"
)

var (
	_ Resolver = (*SingleFlight)(nil)
)

// SingleFlight coalesces identical concurrent forward queries
// before passing them over to an [Adapter], so a burst for one name
// costs a single blocking system call. Nothing outlives the
// in-flight call; this is deduplication, not caching.
type SingleFlight struct {
	a *Adapter
	g singleflight.Group
}

// NewSingleFlight creates a [SingleFlight] in front of the given
// [Adapter], or [Default] if nil.
func NewSingleFlight(a *Adapter) *SingleFlight {
	if a == nil {
		a = Default()
	}
	return &SingleFlight{a: a}
}

// GetAddrInfo implements the [Resolver] interface coalescing
// identical concurrent queries. Every caller receives its own
// [AddrList] to release.
func (sf *SingleFlight) GetAddrInfo(ctx context.Context, host, service string,
	hints *Hints) (*AddrList, error) {
	//
	if ctx == nil {
		ctx = context.Background()
	}

	key := forwardKey(host, service, hints)
	v, err, _ := sf.g.Do(key, func() (any, error) {
		list, err := sf.a.GetAddrInfo(ctx, host, service, hints)
		if err != nil {
			return nil, err
		}

		// snapshot so every waiter can own a copy
		addrs := make([]AddrInfo, list.Len())
		copy(addrs, list.Addrs())
		_ = list.Close()
		return addrs, nil
	})

	if err != nil {
		return nil, eai.Wrap(host, err)
	}

	shared, ok := v.([]AddrInfo)
	if !ok {
		return nil, eai.New(eai.Fail, host)
	}

	own := make([]AddrInfo, len(shared))
	copy(own, shared)
	return newAddrList(own), nil
}

// GetNameInfo implements the [Resolver] interface. Reverse calls
// write caller-specific buffers and pass through uncoalesced.
func (sf *SingleFlight) GetNameInfo(ctx context.Context, sa sockaddr.SockAddr,
	host, serv []byte, flags NIFlags) (int, int, error) {
	return sf.a.GetNameInfo(ctx, sa, host, serv, flags)
}

// forwardKey derives the coalescing key for a forward query.
func forwardKey(host, service string, hints *Hints) string {
	var h Hints
	if hints != nil {
		h = *hints
	}

	var b strings.Builder
	b.WriteString(host)
	b.WriteByte(0)
	b.WriteString(service)
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(int(h.Family)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(h.SockType)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(h.Protocol)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(h.Flags)))
	return b.String()
}
