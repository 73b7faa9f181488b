package sysresolv

import (
	"testing"

	"github.com/miekg/dns"

	"darvaza.org/sysresolv/internal/dnstest"
)

// newTestServer serves a small static zone on a loopback port so
// lookups stay offline and deterministic.
func newTestServer(t *testing.T) *dnstest.Server {
	t.Helper()

	s := &dnstest.Server{
		A: map[string][]string{
			"example.test": {"192.0.2.10"},
			"dual.test":    {"192.0.2.20"},
			"v4only.test":  {"192.0.2.30"},
			"one.test":     {"192.0.2.1"},
			"two.test":     {"192.0.2.2"},
			"three.test":   {"192.0.2.3"},
		},
		AAAA: map[string][]string{
			"example.test": {"2001:db8::10"},
			"dual.test":    {"2001:db8::20"},
			"v6only.test":  {"2001:db8::30"},
		},
		PTR: map[string][]string{
			"10.2.0.192.in-addr.arpa": {"ptr.example.test"},
		},
		Rcode: map[string]int{
			"flaky.test": dns.RcodeServerFailure,
		},
	}

	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = s.Shutdown()
	})
	return s
}

func newTestAdapter(t *testing.T, s *dnstest.Server) *Adapter {
	t.Helper()

	a := &Adapter{
		PreferGo: true,
		Dialer:   s.Dialer(),
	}
	a.SetDefaults()
	return a
}
