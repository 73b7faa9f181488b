package sysresolv

import (
	"time"

	"darvaza.org/slog"

	"darvaza.org/sysresolv/pkg/sockaddr"
)

func (a *Adapter) sayForward(host, service string, count int, rtt time.Duration) {
	if log, ok := a.Logger.Debug().WithEnabled(); ok {
		log.WithFields(slog.Fields{
			"host":    host,
			"service": service,
			"addrs":   count,
			"rtt":     rtt / time.Millisecond,
		}).Print("getaddrinfo")
	}
}

func (a *Adapter) sayForwardError(host, service string, err error) {
	if log, ok := a.Logger.Error().WithEnabled(); ok {
		log.WithFields(slog.Fields{
			"host":              host,
			"service":           service,
			slog.ErrorFieldName: err,
		}).Print("getaddrinfo")
	}
}

func (a *Adapter) sayReverse(sa sockaddr.SockAddr, hostname, servname string,
	rtt time.Duration) {
	//
	if log, ok := a.Logger.Debug().WithEnabled(); ok {
		log.WithFields(slog.Fields{
			"addr":    sa.String(),
			"host":    hostname,
			"service": servname,
			"rtt":     rtt / time.Millisecond,
		}).Print("getnameinfo")
	}
}

func (a *Adapter) sayReverseError(sa sockaddr.SockAddr, err error) {
	if log, ok := a.Logger.Error().WithEnabled(); ok {
		log.WithFields(slog.Fields{
			"addr":              sa.String(),
			slog.ErrorFieldName: err,
		}).Print("getnameinfo")
	}
}
