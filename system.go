package sysresolv

import (
	"context"
	"net"
	"sync"
)

// DialerFunc is the dialer used by the underlying [net.Resolver]
// to reach its servers.
type DialerFunc func(ctx context.Context, network, address string) (net.Conn, error)

// SystemResolver returns a standard net.Resolver configured to preferGo or not
func SystemResolver(preferGo bool) *net.Resolver {
	return SystemResolverWithDialer(preferGo, nil)
}

// SystemResolverWithDialer returns a standard net.Resolver configured to preferGo
// or not and use the given Dialer instead of the default
func SystemResolverWithDialer(preferGo bool, dialer DialerFunc) *net.Resolver {
	return &net.Resolver{
		PreferGo: preferGo,
		Dial:     dialer,
	}
}

// Process-wide adapter, initialized once on first use so platform
// resolver state stays hidden behind the public operations.
var (
	defaultAdapter     *Adapter
	defaultAdapterOnce sync.Once
)

// Default returns the process-wide [Adapter].
func Default() *Adapter {
	defaultAdapterOnce.Do(func() {
		defaultAdapter = New()
	})
	return defaultAdapter
}
