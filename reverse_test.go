package sysresolv

import (
	"bytes"
	"context"
	"net/netip"
	"testing"

	"darvaza.org/sysresolv/pkg/eai"
	"darvaza.org/sysresolv/pkg/sockaddr"
)

func mustSockAddr(t *testing.T, s string) sockaddr.SockAddr {
	t.Helper()

	sa, err := sockaddr.FromAddrPort(netip.MustParseAddrPort(s))
	if err != nil {
		t.Fatal(err)
	}
	return sa
}

func TestGetNameInfoNumeric(t *testing.T) {
	a := New()
	ctx := context.Background()

	host := make([]byte, MaxHost)
	serv := make([]byte, MaxServ)

	sa := mustSockAddr(t, "127.0.0.1:80")
	hostLen, servLen, err := a.GetNameInfo(ctx, sa, host, serv,
		NINumericHost|NINumericServ)
	switch {
	case err != nil:
		t.Fatal(err)
	case string(host[:hostLen]) != "127.0.0.1":
		t.Errorf("got host %q", host[:hostLen])
	case host[hostLen] != 0:
		t.Errorf("hostname missing NUL terminator")
	case string(serv[:servLen]) != "80":
		t.Errorf("got service %q", serv[:servLen])
	case serv[servLen] != 0:
		t.Errorf("service missing NUL terminator")
	}
}

func TestGetNameInfoServiceName(t *testing.T) {
	a := New()
	ctx := context.Background()

	tests := []struct {
		addr     string
		flags    NIFlags
		expected string
	}{
		{"127.0.0.1:80", NINumericHost, "http"},
		{"127.0.0.1:443", NINumericHost, "https"},
		{"127.0.0.1:53", NINumericHost | NIDgram, "domain"},
		{"127.0.0.1:123", NINumericHost | NIDgram, "ntp"},
		{"127.0.0.1:80", NINumericHost | NINumericServ, "80"},
		// unknown ports fall back to numeric
		{"127.0.0.1:61234", NINumericHost, "61234"},
	}

	for _, tc := range tests {
		_, servname, err := a.LookupNameInfo(ctx,
			mustSockAddr(t, tc.addr), tc.flags)
		switch {
		case err != nil:
			t.Errorf("%q: %v", tc.addr, err)
		case servname != tc.expected:
			t.Errorf("%q: got %q instead of %q",
				tc.addr, servname, tc.expected)
		default:
			t.Logf("%q: %q", tc.addr, servname)
		}
	}
}

func TestGetNameInfoOverflow(t *testing.T) {
	a := New()
	ctx := context.Background()

	sa := mustSockAddr(t, "192.0.2.10:80")

	// undersized buffer, pre-filled to prove it stays untouched
	host := bytes.Repeat([]byte{0xaa}, 4)
	serv := make([]byte, MaxServ)

	_, _, err := a.GetNameInfo(ctx, sa, host, serv, NINumericHost)
	switch {
	case !eai.IsOverflow(err):
		t.Fatalf("got %v instead of overflow", err)
	case !bytes.Equal(host, bytes.Repeat([]byte{0xaa}, 4)):
		t.Errorf("undersized buffer was written to: %q", host)
	}

	// exact fit: name plus terminator
	host = make([]byte, len("192.0.2.10")+1)
	hostLen, _, err := a.GetNameInfo(ctx, sa, host, serv, NINumericHost)
	switch {
	case err != nil:
		t.Fatal(err)
	case string(host[:hostLen]) != "192.0.2.10":
		t.Errorf("got %q", host[:hostLen])
	}

	// one byte short of the terminator
	host = make([]byte, len("192.0.2.10"))
	if _, _, err = a.GetNameInfo(ctx, sa, host, serv, NINumericHost); !eai.IsOverflow(err) {
		t.Errorf("got %v instead of overflow", err)
	}
}

func TestGetNameInfoPTR(t *testing.T) {
	srv := newTestServer(t)
	a := newTestAdapter(t, srv)
	ctx := context.Background()

	sa := mustSockAddr(t, "192.0.2.10:80")

	hostname, servname, err := a.LookupNameInfo(ctx, sa, 0)
	switch {
	case err != nil:
		t.Fatal(err)
	case hostname != "ptr.example.test":
		t.Errorf("got host %q", hostname)
	case servname != "http":
		t.Errorf("got service %q", servname)
	}

	// NINoFQDN keeps the first label only
	hostname, _, err = a.LookupNameInfo(ctx, sa, NINoFQDN)
	if err != nil || hostname != "ptr" {
		t.Errorf("got %q, %v", hostname, err)
	}
}

func TestGetNameInfoNameReqd(t *testing.T) {
	srv := newTestServer(t)
	a := newTestAdapter(t, srv)
	ctx := context.Background()

	// no PTR record for this one
	sa := mustSockAddr(t, "192.0.2.99:80")

	// without NINameReqd the numeric form is an acceptable fallback
	hostname, _, err := a.LookupNameInfo(ctx, sa, 0)
	if err != nil || hostname != "192.0.2.99" {
		t.Errorf("got %q, %v", hostname, err)
	}

	if _, _, err = a.LookupNameInfo(ctx, sa, NINameReqd); !eai.IsNoName(err) {
		t.Errorf("got %v instead of NoName", err)
	}
}

func TestGetNameInfoBadInput(t *testing.T) {
	a := New()
	ctx := context.Background()

	var invalid sockaddr.SockAddr
	if _, _, err := a.GetNameInfo(ctx, invalid, make([]byte, 8), nil, 0); StatusOf(err) != eai.Family {
		t.Errorf("got %v instead of Family", err)
	}

	sa := mustSockAddr(t, "127.0.0.1:80")
	if _, _, err := a.GetNameInfo(ctx, sa, nil, nil, 0); !eai.IsNoName(err) {
		t.Errorf("got %v instead of NoName", err)
	}
}

func TestGetNameInfoRaw(t *testing.T) {
	a := New()
	ctx := context.Background()

	raw, err := mustSockAddr(t, "127.0.0.1:443").Marshal()
	if err != nil {
		t.Fatal(err)
	}

	host := make([]byte, MaxHost)
	serv := make([]byte, MaxServ)

	hostLen, servLen, err := a.GetNameInfoRaw(ctx, raw, host, serv,
		NINumericHost)
	switch {
	case err != nil:
		t.Fatal(err)
	case string(host[:hostLen]) != "127.0.0.1":
		t.Errorf("got host %q", host[:hostLen])
	case string(serv[:servLen]) != "https":
		t.Errorf("got service %q", serv[:servLen])
	}

	if _, _, err = a.GetNameInfoRaw(ctx, raw[:4], host, serv, 0); err == nil {
		t.Errorf("truncated sockaddr accepted")
	}
}
