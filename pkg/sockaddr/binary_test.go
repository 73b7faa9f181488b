package sockaddr

import (
	"net/netip"
	"testing"

	"darvaza.org/sysresolv/pkg/eai"
)

func TestMarshalRoundTrip(t *testing.T) {
	tests := []struct {
		input string
		size  int
	}{
		{"127.0.0.1:53", SizeInet},
		{"192.0.2.1:0", SizeInet},
		{"[::1]:8080", SizeInet6},
		{"[2001:db8::42]:443", SizeInet6},
	}

	for _, tc := range tests {
		sa, err := FromAddrPort(netip.MustParseAddrPort(tc.input))
		if err != nil {
			t.Fatalf("%q: %v", tc.input, err)
		}

		b, err := sa.Marshal()
		switch {
		case err != nil:
			t.Errorf("%q: marshal failed: %v", tc.input, err)
			continue
		case len(b) != tc.size:
			t.Errorf("%q: encoded %d bytes instead of %d",
				tc.input, len(b), tc.size)
			continue
		}

		out, err := Unmarshal(b)
		switch {
		case err != nil:
			t.Errorf("%q: unmarshal failed: %v", tc.input, err)
		case out.Family != sa.Family || out.Addr != sa.Addr:
			t.Errorf("%q: round trip gave %v %s", tc.input,
				out.Family, out)
		default:
			t.Logf("%q: %d bytes", tc.input, len(b))
		}
	}
}

func TestUnmarshalBadInput(t *testing.T) {
	good, err := SockAddr{
		Family: AFInet,
		Addr:   netip.MustParseAddrPort("127.0.0.1:53"),
	}.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		input    []byte
		expected eai.Status
	}{
		{"empty", nil, eai.Family},
		{"short", []byte{0}, eai.Family},
		{"unknown family", []byte{0xff, 0xff, 0, 0}, eai.Family},
		{"truncated inet", good[:8], eai.Fail},
		{"oversized inet", append(append([]byte{}, good...), 0), eai.Fail},
	}

	for _, tc := range tests {
		_, err := Unmarshal(tc.input)
		switch {
		case err == nil:
			t.Errorf("%s: failed to fail", tc.name)
		case eai.StatusFromError(err) != tc.expected:
			t.Errorf("%s: got %v instead of %v", tc.name,
				eai.StatusFromError(err), tc.expected)
		}
	}
}

func TestMarshalInvalid(t *testing.T) {
	var sa SockAddr
	if _, err := sa.Marshal(); err == nil {
		t.Errorf("zero sockaddr marshaled")
	}
}
