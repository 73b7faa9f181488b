package sysresolv

import (
	"context"
	"strconv"
	"strings"
	"time"

	"darvaza.org/sysresolv/pkg/eai"
	"darvaza.org/sysresolv/pkg/sockaddr"
)

// GetNameInfo performs a blocking reverse resolution of sa, filling
// the caller-owned host and serv buffers in place with
// NUL-terminated text. It returns the lengths written, excluding
// the terminator, and never writes past a buffer's capacity; a name
// that doesn't fit leaves its buffer untouched and the call fails
// with [eai.Overflow].
//
// A nil buffer skips the corresponding lookup. Passing both nil
// fails with [eai.NoName].
func (a *Adapter) GetNameInfo(ctx context.Context, sa sockaddr.SockAddr,
	host, serv []byte, flags NIFlags) (hostLen, servLen int, err error) {
	//
	a.SetDefaults()
	if ctx == nil {
		ctx = context.Background()
	}

	if !sa.IsValid() {
		return 0, 0, eai.ErrFamily(sa.String())
	}

	if len(host) == 0 && len(serv) == 0 {
		return 0, 0, eai.ErrNoName(sa.String())
	}

	start := time.Now()

	hostname, err := a.reverseHost(ctx, sa, len(host), flags)
	if err != nil {
		a.sayReverseError(sa, err)
		return 0, 0, err
	}

	servname, err := a.reverseServ(sa, len(serv), flags)
	if err != nil {
		return 0, 0, err
	}

	hostLen = fillBuffer(host, hostname)
	servLen = fillBuffer(serv, servname)

	a.sayReverse(sa, hostname, servname, time.Since(start))
	return hostLen, servLen, nil
}

// GetNameInfoRaw is GetNameInfo over the fixed-size binary socket
// address form, tagged by family and validated for exact length.
func (a *Adapter) GetNameInfoRaw(ctx context.Context, raw []byte,
	host, serv []byte, flags NIFlags) (hostLen, servLen int, err error) {
	//
	sa, err := sockaddr.Unmarshal(raw)
	if err != nil {
		return 0, 0, err
	}
	return a.GetNameInfo(ctx, sa, host, serv, flags)
}

// LookupNameInfo is a convenience form of [Adapter.GetNameInfo]
// allocating generously sized buffers and returning strings.
func (a *Adapter) LookupNameInfo(ctx context.Context, sa sockaddr.SockAddr,
	flags NIFlags) (hostname, servname string, err error) {
	//
	host := make([]byte, MaxHost)
	serv := make([]byte, MaxServ)

	hostLen, servLen, err := a.GetNameInfo(ctx, sa, host, serv, flags)
	if err != nil {
		return "", "", err
	}
	return string(host[:hostLen]), string(serv[:servLen]), nil
}

// reverseHost resolves the hostname text for the address, or its
// numeric form when allowed.
func (a *Adapter) reverseHost(ctx context.Context, sa sockaddr.SockAddr,
	capacity int, flags NIFlags) (string, error) {
	//
	if capacity == 0 {
		return "", nil
	}

	addr := sa.Addr.Addr()
	if flags&NINumericHost != 0 || addr.IsUnspecified() {
		return checkCap(addr.Unmap().String(), capacity, sa.String())
	}

	name, err := a.lookupPTR(ctx, sa)
	switch {
	case err == nil:
		if flags&NINoFQDN != 0 {
			if i := strings.IndexByte(name, '.'); i > 0 {
				name = name[:i]
			}
		}
		return checkCap(name, capacity, sa.String())
	case flags&NINameReqd != 0:
		// no numeric fallback allowed
		return "", err
	default:
		return checkCap(addr.Unmap().String(), capacity, sa.String())
	}
}

func (a *Adapter) lookupPTR(ctx context.Context, sa sockaddr.SockAddr) (string, error) {
	if err := a.grabSlot(ctx, sa.String()); err != nil {
		return "", err
	}
	defer a.releaseSlot()

	names, err := a.resolver().LookupAddr(ctx, sa.Addr.Addr().Unmap().String())
	switch {
	case err != nil:
		return "", eai.Wrap(sa.String(), err)
	case len(names) == 0:
		return "", eai.ErrNoName(sa.String())
	default:
		return decanonize(names[0]), nil
	}
}

// reverseServ resolves the service name text for the port, or its
// numeric form when allowed or when the port is unknown.
func (a *Adapter) reverseServ(sa sockaddr.SockAddr,
	capacity int, flags NIFlags) (string, error) {
	//
	if capacity == 0 {
		return "", nil
	}

	port := sa.Addr.Port()
	if flags&NINumericServ == 0 {
		if name, ok := serviceName(port, flags&NIDgram != 0); ok {
			return checkCap(name, capacity, sa.String())
		}
	}

	return checkCap(strconv.Itoa(int(port)), capacity, sa.String())
}

// checkCap guards the buffer-fill: name plus NUL must fit.
func checkCap(name string, capacity int, addr string) (string, error) {
	if len(name)+1 > capacity {
		return "", eai.ErrOverflow(addr)
	}
	return name, nil
}

// fillBuffer writes the NUL-terminated name, already known to fit,
// returning the length without the terminator.
func fillBuffer(b []byte, name string) int {
	if len(b) == 0 {
		return 0
	}
	n := copy(b, name)
	b[n] = 0
	return n
}
