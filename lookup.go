package sysresolv

import (
	"context"
	"net/netip"
)

// LookupHost resolves host and returns its addresses as strings,
// releasing the underlying result before returning.
func (a *Adapter) LookupHost(ctx context.Context, host string) ([]string, error) {
	list, err := a.GetAddrInfo(ctx, host, "", &Hints{
		SockType: SockStream,
	})
	if err != nil {
		return nil, err
	}
	defer list.Close()

	addrs := list.Addrs()
	out := make([]string, 0, len(addrs))
	for _, ai := range addrs {
		out = append(out, ai.Addr.Addr().String())
	}
	return out, nil
}

// LookupAddrPort resolves host and service into ready-to-dial
// address-port pairs, releasing the underlying result before
// returning.
func (a *Adapter) LookupAddrPort(ctx context.Context, host, service string,
	hints *Hints) ([]netip.AddrPort, error) {
	//
	list, err := a.GetAddrInfo(ctx, host, service, hints)
	if err != nil {
		return nil, err
	}
	defer list.Close()

	addrs := list.Addrs()
	out := make([]netip.AddrPort, 0, len(addrs))
	for _, ai := range addrs {
		out = append(out, ai.Addr)
	}
	return out, nil
}
