package sysresolv

import (
	"context"
	"strconv"

	"darvaza.org/sysresolv/pkg/eai"
)

// Well-known service names for reverse resolution. Go exposes no
// port-to-name lookup, so the adapter carries the registrations it
// can answer and falls back to numeric ports for the rest.
var (
	tcpServices = map[uint16]string{
		7:   "echo",
		21:  "ftp",
		22:  "ssh",
		23:  "telnet",
		25:  "smtp",
		53:  "domain",
		80:  "http",
		110: "pop3",
		143: "imap",
		443: "https",
		587: "submission",
		873: "rsync",
		993: "imaps",
		995: "pop3s",
	}

	udpServices = map[uint16]string{
		7:    "echo",
		53:   "domain",
		67:   "bootps",
		68:   "bootpc",
		69:   "tftp",
		123:  "ntp",
		161:  "snmp",
		514:  "syslog",
		1900: "ssdp",
	}
)

func serviceName(port uint16, dgram bool) (string, bool) {
	m := tcpServices
	if dgram {
		m = udpServices
	}

	name, ok := m[port]
	return name, ok
}

// LookupService maps a port to its well-known service name in the
// namespace of the given socket type.
func (a *Adapter) LookupService(_ context.Context, port uint16,
	st SockType) (string, error) {
	//
	if name, ok := serviceName(port, st == SockDgram); ok {
		return name, nil
	}
	return "", eai.ErrService(strconv.Itoa(int(port)))
}
