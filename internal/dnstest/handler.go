package dnstest

import (
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"

	"darvaza.org/slog"
)

var (
	_ dns.Handler = (*Server)(nil)
)

// ServeDNS implements [dns.Handler] answering from the static maps.
func (s *Server) ServeDNS(w dns.ResponseWriter, req *dns.Msg) {
	s.queries.Add(1)

	if s.Delay > 0 {
		time.Sleep(s.Delay)
	}

	resp := new(dns.Msg)
	resp.SetReply(req)
	resp.Authoritative = true

	if len(req.Question) == 1 {
		s.answer(resp, req.Question[0])
	} else {
		resp.Rcode = dns.RcodeFormatError
	}

	s.sayQuery(req, resp)
	_ = w.WriteMsg(resp)
}

func (s *Server) answer(resp *dns.Msg, q dns.Question) {
	name := strings.ToLower(strings.TrimSuffix(q.Name, "."))

	if rcode, ok := s.Rcode[name]; ok {
		resp.Rcode = rcode
		return
	}

	switch q.Qtype {
	case dns.TypeA:
		for _, addr := range s.A[name] {
			resp.Answer = append(resp.Answer, &dns.A{
				Hdr: answerHeader(q.Name, dns.TypeA),
				A:   net.ParseIP(addr).To4(),
			})
		}
	case dns.TypeAAAA:
		for _, addr := range s.AAAA[name] {
			resp.Answer = append(resp.Answer, &dns.AAAA{
				Hdr:  answerHeader(q.Name, dns.TypeAAAA),
				AAAA: net.ParseIP(addr),
			})
		}
	case dns.TypePTR:
		for _, target := range s.PTR[name] {
			resp.Answer = append(resp.Answer, &dns.PTR{
				Hdr: answerHeader(q.Name, dns.TypePTR),
				Ptr: dns.Fqdn(target),
			})
		}
	}

	if len(resp.Answer) == 0 && !s.known(name) {
		resp.Rcode = dns.RcodeNameError
	}
}

// known tells if the owner exists in any map, so existing names
// yield empty NOERROR answers on other record types.
func (s *Server) known(name string) bool {
	if _, ok := s.A[name]; ok {
		return true
	}
	if _, ok := s.AAAA[name]; ok {
		return true
	}
	_, ok := s.PTR[name]
	return ok
}

func answerHeader(name string, rrtype uint16) dns.RR_Header {
	return dns.RR_Header{
		Name:   name,
		Rrtype: rrtype,
		Class:  dns.ClassINET,
		Ttl:    60,
	}
}

func (s *Server) sayQuery(req, resp *dns.Msg) {
	if log, ok := s.Logger.Debug().WithEnabled(); ok {
		var name string
		var qtype uint16

		if len(req.Question) > 0 {
			name = req.Question[0].Name
			qtype = req.Question[0].Qtype
		}

		log.WithFields(slog.Fields{
			"name":    name,
			"qtype":   dns.TypeToString[qtype],
			"rcode":   dns.RcodeToString[resp.Rcode],
			"answers": len(resp.Answer),
		}).Print("query")
	}
}
