package sysresolv

import (
	"context"

	"darvaza.org/sysresolv/pkg/eai"
	"darvaza.org/sysresolv/pkg/sockaddr"
)

// AddrInfoResult carries the outcome of an asynchronous forward
// resolution. On success the receiver owns List and must release it.
type AddrInfoResult struct {
	List *AddrList
	Err  error
}

// NameInfoResult carries the outcome of an asynchronous reverse
// resolution.
type NameInfoResult struct {
	Host string
	Serv string
	Err  error
}

// Async dispatches blocking resolution calls to their own
// goroutines so callers can select on completion. The underlying
// system call cannot be interrupted once started; cancelling the
// context abandons the request instead, the waiter receives
// [eai.Canceled] and the runner completes unobserved, releasing
// the orphaned result itself.
type Async struct {
	// Adapter performs the actual calls. [Default] if unset.
	Adapter *Adapter
}

func (as *Async) adapter() *Adapter {
	if as.Adapter != nil {
		return as.Adapter
	}
	return Default()
}

// GetAddrInfo starts an asynchronous forward resolution. The
// returned channel is buffered and receives exactly one result.
func (as *Async) GetAddrInfo(ctx context.Context, host, service string,
	hints *Hints) <-chan AddrInfoResult {
	//
	if ctx == nil {
		ctx = context.Background()
	}

	out := make(chan AddrInfoResult, 1)
	done := make(chan AddrInfoResult, 1)

	go func() {
		// detached: the blocking call runs to completion even
		// if the caller walked away
		list, err := as.adapter().GetAddrInfo(context.Background(),
			host, service, hints)
		done <- AddrInfoResult{List: list, Err: err}
	}()

	go func() {
		select {
		case r := <-done:
			out <- r
		case <-ctx.Done():
			out <- AddrInfoResult{Err: eai.ErrCanceled(host, ctx.Err())}
			go releaseAbandoned(done)
		}
	}()

	return out
}

// GetNameInfo starts an asynchronous reverse resolution with
// generously sized buffers. The returned channel is buffered and
// receives exactly one result.
func (as *Async) GetNameInfo(ctx context.Context, sa sockaddr.SockAddr,
	flags NIFlags) <-chan NameInfoResult {
	//
	if ctx == nil {
		ctx = context.Background()
	}

	out := make(chan NameInfoResult, 1)
	done := make(chan NameInfoResult, 1)

	go func() {
		host, serv, err := as.adapter().LookupNameInfo(context.Background(),
			sa, flags)
		done <- NameInfoResult{Host: host, Serv: serv, Err: err}
	}()

	go func() {
		select {
		case r := <-done:
			out <- r
		case <-ctx.Done():
			out <- NameInfoResult{Err: eai.ErrCanceled(sa.String(), ctx.Err())}
			// reverse results don't need releasing
			<-done
		}
	}()

	return out
}

// releaseAbandoned waits for an abandoned forward call to finish
// and releases its result so ownership never leaks.
func releaseAbandoned(done <-chan AddrInfoResult) {
	r := <-done
	if r.List != nil {
		_ = r.List.Close()
	}
}
