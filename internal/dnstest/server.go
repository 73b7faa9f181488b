// Package dnstest provides an in-process DNS server so resolver
// tests run deterministic and offline
package dnstest

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/miekg/dns"
	"golang.org/x/sync/errgroup"

	"darvaza.org/slog"
	"darvaza.org/slog/handlers/discard"
)

// Server is a loopback DNS server answering from static maps.
type Server struct {
	// Logger receives one debug entry per query. Discard if unset.
	Logger slog.Logger

	// A, AAAA and PTR map owner names, without trailing dot, to
	// their record values.
	A    map[string][]string
	AAAA map[string][]string
	PTR  map[string][]string

	// Rcode overrides the answer for the named owners, for
	// exercising failure translation.
	Rcode map[string]int

	// Delay holds every answer back, for exercising abandonment.
	Delay time.Duration

	mu      sync.Mutex
	pc      net.PacketConn
	srv     *dns.Server
	queries atomic.Int64

	eg     *errgroup.Group
	egCtx  context.Context
	cancel context.CancelFunc
}

// SetDefaults fills gaps in the configuration.
func (s *Server) SetDefaults() {
	if s.Logger == nil {
		s.Logger = discard.New()
	}

	if s.eg == nil {
		ctx, cancel := context.WithCancel(context.Background())
		eg, egCtx := errgroup.WithContext(ctx)

		s.eg = eg
		s.egCtx = egCtx
		s.cancel = cancel
	}
}

// Start binds an ephemeral loopback UDP port and serves until
// [Server.Shutdown].
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.SetDefaults()

	if s.srv != nil {
		return nil
	}

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		return err
	}

	s.pc = pc
	s.srv = &dns.Server{
		PacketConn: pc,
		Handler:    s,
	}

	srv := s.srv
	s.eg.Go(func() error {
		defer pc.Close()
		return srv.ActivateAndServe()
	})
	s.eg.Go(func() error {
		<-s.egCtx.Done()
		return srv.Shutdown()
	})

	return nil
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pc == nil {
		return ""
	}
	return s.pc.LocalAddr().String()
}

// Queries returns how many DNS queries the server has answered.
func (s *Server) Queries() int64 {
	return s.queries.Load()
}

// Dialer returns a dial function routing every resolver connection
// to this server regardless of the address the resolver picked.
func (s *Server) Dialer() func(context.Context, string, string) (net.Conn, error) {
	addr := s.Addr()
	return func(ctx context.Context, _, _ string) (net.Conn, error) {
		var d net.Dialer
		return d.DialContext(ctx, "udp", addr)
	}
}

// Shutdown stops the server and waits for its workers.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	cancel, eg := s.cancel, s.eg
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}

	cancel()
	return eg.Wait()
}
