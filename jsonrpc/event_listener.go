package jsonrpc

import "time"

type EventListener interface {
	// OnResponse is called for every HTTP response received, whatever
	// its status.
	OnResponse(method string, status int, took time.Duration)
	// OnRequestFailed is called when a call returns an error, with the
	// error about to be returned.
	OnRequestFailed(method string, err error)
}

// SelectiveListener forwards to its non-nil callbacks.
type SelectiveListener struct {
	OnResponseCb      func(method string, status int, took time.Duration)
	OnRequestFailedCb func(method string, err error)
}

func (l *SelectiveListener) OnResponse(method string, status int, took time.Duration) {
	if l.OnResponseCb != nil {
		l.OnResponseCb(method, status, took)
	}
}

func (l *SelectiveListener) OnRequestFailed(method string, err error) {
	if l.OnRequestFailedCb != nil {
		l.OnRequestFailedCb(method, err)
	}
}
