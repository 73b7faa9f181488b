package dnstest

import (
	"testing"

	"github.com/miekg/dns"
)

func newServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		A:    map[string][]string{"example.test": {"192.0.2.10"}},
		AAAA: map[string][]string{"example.test": {"2001:db8::10"}},
		PTR: map[string][]string{
			"10.2.0.192.in-addr.arpa": {"example.test"},
		},
		Rcode: map[string]int{"flaky.test": dns.RcodeServerFailure},
	}

	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = s.Shutdown()
	})
	return s
}

func query(t *testing.T, s *Server, name string, qtype uint16) *dns.Msg {
	t.Helper()

	req := new(dns.Msg)
	req.SetQuestion(dns.Fqdn(name), qtype)

	resp, err := dns.Exchange(req, s.Addr())
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestServeDNS(t *testing.T) {
	s := newServer(t)

	tests := []struct {
		name    string
		qtype   uint16
		rcode   int
		answers int
	}{
		{"example.test", dns.TypeA, dns.RcodeSuccess, 1},
		{"example.test", dns.TypeAAAA, dns.RcodeSuccess, 1},
		{"example.test", dns.TypeMX, dns.RcodeSuccess, 0},
		{"10.2.0.192.in-addr.arpa", dns.TypePTR, dns.RcodeSuccess, 1},
		{"unknown.test", dns.TypeA, dns.RcodeNameError, 0},
		{"flaky.test", dns.TypeA, dns.RcodeServerFailure, 0},
	}

	for _, tc := range tests {
		resp := query(t, s, tc.name, tc.qtype)
		switch {
		case resp.Rcode != tc.rcode:
			t.Errorf("%s/%s: got %s instead of %s", tc.name,
				dns.TypeToString[tc.qtype],
				dns.RcodeToString[resp.Rcode],
				dns.RcodeToString[tc.rcode])
		case len(resp.Answer) != tc.answers:
			t.Errorf("%s/%s: got %d answers instead of %d", tc.name,
				dns.TypeToString[tc.qtype],
				len(resp.Answer), tc.answers)
		}
	}

	if n := s.Queries(); n != int64(len(tests)) {
		t.Errorf("counted %d queries instead of %d", n, len(tests))
	}
}

func TestServerRestart(t *testing.T) {
	s := newServer(t)

	// Start is idempotent
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	if s.Addr() == "" {
		t.Fatal("no listen address")
	}
}
