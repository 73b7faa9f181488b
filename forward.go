package sysresolv

import (
	"context"
	"net/netip"
	"strconv"
	"time"

	"darvaza.org/sysresolv/pkg/eai"
)

// GetAddrInfo performs a blocking forward resolution of host and
// service, filtered by the given hints. At least one of host and
// service must be non-empty. On success the caller owns the
// returned [AddrList] and must release it with Close once done.
//
// The call may contact the configured DNS servers and blocks until
// the platform resolver produces an outcome. It never retries;
// only [eai.Again] signals that the caller may.
func (a *Adapter) GetAddrInfo(ctx context.Context, host, service string,
	hints *Hints) (*AddrList, error) {
	//
	a.SetDefaults()
	if ctx == nil {
		ctx = context.Background()
	}

	var h Hints
	if hints != nil {
		h = *hints
	}

	if err := h.Validate(); err != nil {
		return nil, eai.Wrap(host, err)
	}
	pairs, _ := h.pairs()

	if host == "" && service == "" {
		return nil, eai.ErrNoName("")
	}

	start := time.Now()

	port, err := a.lookupPort(ctx, service, h)
	if err != nil {
		return nil, err
	}

	addrs, cname, err := a.resolveHost(ctx, host, h)
	if err != nil {
		a.sayForwardError(host, service, err)
		return nil, err
	}

	list := assembleAddrList(addrs, cname, port, pairs)
	if list.Len() == 0 {
		// resolved, but nothing usable in the requested family
		_ = list.Close()
		return nil, eai.ErrAddrFamily(host)
	}

	a.sayForward(host, service, list.Len(), time.Since(start))
	return list, nil
}

// lookupPort resolves the service argument to a port number.
func (a *Adapter) lookupPort(ctx context.Context, service string,
	h Hints) (uint16, error) {
	//
	if service == "" {
		return 0, nil
	}

	if n, err := strconv.Atoi(service); err == nil {
		if n < 0 || n > 0xffff {
			return 0, eai.ErrService(service)
		}
		return uint16(n), nil
	}

	if h.Flags&AINumericServ != 0 {
		return 0, eai.ErrService(service)
	}

	port, err := a.resolver().LookupPort(ctx, h.portNetwork(), service)
	if err != nil {
		return 0, &eai.Error{
			Status: eai.Service,
			Name:   service,
			Err:    err,
		}
	}
	return uint16(port), nil
}

// resolveHost produces the candidate addresses for host, already
// filtered by the family constraint.
func (a *Adapter) resolveHost(ctx context.Context, host string,
	h Hints) ([]netip.Addr, string, error) {
	//
	if host == "" {
		return implicitAddrs(h), "", nil
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		out, ok := h.wantAddr(addr)
		if !ok {
			return nil, "", eai.ErrAddrFamily(host)
		}

		var cname string
		if h.Flags&AICanonName != 0 {
			cname = host
		}
		return []netip.Addr{out}, cname, nil
	}

	if h.Flags&AINumericHost != 0 {
		// numeric required, lookups suppressed
		return nil, "", eai.ErrNoName(host)
	}

	ascii, err := a.sanitiseHost(host)
	if err != nil {
		return nil, "", err
	}

	return a.doResolveHost(ctx, ascii, h)
}

func (a *Adapter) doResolveHost(ctx context.Context, ascii string,
	h Hints) ([]netip.Addr, string, error) {
	//
	if err := a.grabSlot(ctx, ascii); err != nil {
		return nil, "", err
	}
	defer a.releaseSlot()

	network := h.network()
	if h.Family == AFInet6 && h.Flags&AIV4Mapped != 0 {
		// IPv4 results may be needed as mapped candidates
		network = "ip"
	}

	addrs, err := a.resolver().LookupNetIP(ctx, network, ascii)
	if err != nil {
		return nil, "", eai.Wrap(ascii, err)
	}

	out := make([]netip.Addr, 0, len(addrs))
	for _, addr := range addrs {
		if v, ok := h.wantAddr(addr); ok {
			out = append(out, v)
		}
	}
	out = dropMappedIfNative(out, h)

	var cname string
	if h.Flags&AICanonName != 0 {
		cname = a.canonicalName(ctx, ascii)
	}

	return out, cname, nil
}

// canonicalName chases the CNAME chain for the canonical hostname,
// falling back to the queried name.
func (a *Adapter) canonicalName(ctx context.Context, ascii string) string {
	cname, err := a.resolver().LookupCNAME(ctx, ascii)
	if err != nil || cname == "" {
		return ascii
	}
	return decanonize(cname)
}

// implicitAddrs produces the candidates of an empty host query,
// the unspecified address for listeners under AIPassive and the
// loopback address otherwise.
func implicitAddrs(h Hints) []netip.Addr {
	passive := h.Flags&AIPassive != 0

	v4, v6 := netip.IPv4Unspecified(), netip.IPv6Unspecified()
	if !passive {
		v4 = netip.AddrFrom4([4]byte{127, 0, 0, 1})
		v6 = netip.AddrFrom16([16]byte{15: 1})
	}

	switch h.Family {
	case AFInet:
		return []netip.Addr{v4}
	case AFInet6:
		return []netip.Addr{v6}
	default:
		return []netip.Addr{v4, v6}
	}
}

// assembleAddrList expands addresses across the requested
// (socktype, protocol) pairs preserving resolver order.
func assembleAddrList(addrs []netip.Addr, cname string,
	port uint16, pairs []sockProto) *AddrList {
	//
	out := make([]AddrInfo, 0, len(addrs)*len(pairs))
	for _, addr := range addrs {
		for _, sp := range pairs {
			out = append(out, AddrInfo{
				Family:   familyOf(addr),
				SockType: sp.socktype,
				Protocol: sp.proto,
				Addr:     netip.AddrPortFrom(addr, port),
			})
		}
	}

	if cname != "" && len(out) > 0 {
		out[0].CanonName = cname
	}

	return newAddrList(out)
}

// dropMappedIfNative discards IPv4-mapped candidates when native
// IPv6 addresses were found, so AIV4Mapped only fills the gap.
func dropMappedIfNative(addrs []netip.Addr, h Hints) []netip.Addr {
	if h.Family != AFInet6 || h.Flags&AIV4Mapped == 0 {
		return addrs
	}

	native := false
	for _, addr := range addrs {
		if !addr.Is4In6() {
			native = true
			break
		}
	}
	if !native {
		return addrs
	}

	out := addrs[:0]
	for _, addr := range addrs {
		if !addr.Is4In6() {
			out = append(out, addr)
		}
	}
	return out
}

func familyOf(addr netip.Addr) Family {
	if addr.Is4() {
		return AFInet
	}
	return AFInet6
}
