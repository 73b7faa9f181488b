package sysresolv

import (
	"time"

	"github.com/miekg/dns"
	"golang.org/x/net/idna"

	"darvaza.org/sysresolv/pkg/eai"
)

// sanitiseHost validates a hostname and converts it to its ASCII
// lookup form. Conversions are memoized, the resolved addresses
// never are.
func (a *Adapter) sanitiseHost(host string) (string, error) {
	host = decanonize(host)
	if host == "" {
		return "", eai.ErrNoName("")
	}

	if ascii, ok := a.getName(host); ok {
		return ascii, nil
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", eai.ErrNoName(host)
	}

	if _, ok := dns.IsDomainName(ascii); !ok {
		return "", eai.ErrNoName(host)
	}

	a.setName(host, ascii)
	return ascii, nil
}

func (a *Adapter) getName(host string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.idn == nil {
		return "", false
	}

	ascii, _, ok := a.idn.Get(host)
	return ascii, ok
}

func (a *Adapter) setName(host, ascii string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.idn != nil {
		a.idn.Add(host, ascii, len(host)+len(ascii), time.Time{})
	}
}

// decanonize removes the trailing . if present, unless
// it's the root dot
func decanonize(qName string) string {
	if l := len(qName); l > 1 {
		if qName[l-1] == '.' {
			return qName[:l-1]
		}
	}
	return qName
}
