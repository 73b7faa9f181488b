// Package sysresolv adapts the system's blocking name resolution
// primitives, forward and reverse, normalizing every platform error
// into the status space of [darvaza.org/sysresolv/pkg/eai]
package sysresolv

import (
	"context"
	"net"
	"sync"
	"time"

	"darvaza.org/cache/x/simplelru"
	"darvaza.org/slog"
	"darvaza.org/slog/handlers/discard"

	"darvaza.org/sysresolv/pkg/eai"
)

// interface assertions
var (
	_ Resolver = (*Adapter)(nil)
)

const (
	// DefaultMaxParallel is the number of blocking system calls
	// allowed in flight if none is specified.
	DefaultMaxParallel = 8
	// DefaultNameCacheSize is the size of the IDNA conversion
	// memo if none is specified.
	DefaultNameCacheSize = 256
)

// Adapter performs blocking system name resolution through a
// [net.Resolver]. The zero value is usable after [Adapter.SetDefaults],
// and fields must not be altered once in use.
type Adapter struct {
	// Logger receives debug entries per query and errors. Discard
	// if unset.
	Logger slog.Logger

	// PreferGo makes the underlying resolver use the pure Go
	// implementation instead of the platform's.
	PreferGo bool

	// Dialer optionally overrides how the underlying resolver
	// reaches its servers.
	Dialer DialerFunc

	// MaxParallel bounds concurrent blocking calls against the
	// platform resolver.
	MaxParallel int

	mu  sync.Mutex
	res *net.Resolver
	sem chan struct{}
	idn *simplelru.LRU[string, string]
}

// New creates an [Adapter] ready to use.
func New() *Adapter {
	a := &Adapter{}
	a.SetDefaults()
	return a
}

// SetDefaults fills gaps in the Adapter.
func (a *Adapter) SetDefaults() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Logger == nil {
		a.Logger = discard.New()
	}

	if a.MaxParallel <= 0 {
		a.MaxParallel = DefaultMaxParallel
	}

	if a.res == nil {
		a.res = SystemResolverWithDialer(a.PreferGo, a.Dialer)
	}

	if a.sem == nil {
		a.sem = make(chan struct{}, a.MaxParallel)
	}

	if a.idn == nil {
		a.idn = simplelru.NewLRU(DefaultNameCacheSize,
			a.onNameAdd, a.onNameEvict)
	}
}

func (a *Adapter) resolver() *net.Resolver {
	a.SetDefaults()
	return a.res
}

// grabSlot acquires one of the bounded in-flight slots, waiting
// until one is free or the context is done.
func (a *Adapter) grabSlot(ctx context.Context, name string) error {
	a.SetDefaults()

	select {
	case a.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return eai.Wrap(name, ctx.Err())
	}
}

func (a *Adapter) releaseSlot() {
	<-a.sem
}

func (a *Adapter) onNameAdd(host, ascii string, size int, _ time.Time) {
	if l, ok := a.Logger.Debug().WithEnabled(); ok {
		l.WithFields(slog.Fields{
			"host":    host,
			"ascii":   ascii,
			"entries": size,
		}).Print("idna cached")
	}
}

func (a *Adapter) onNameEvict(host, _ string, size int) {
	if l, ok := a.Logger.Debug().WithEnabled(); ok {
		l.WithFields(slog.Fields{
			"host":    host,
			"entries": size,
		}).Print("idna evicted")
	}
}
