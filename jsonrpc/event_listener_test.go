package jsonrpc_test

import (
	"time"
)

type CountingEventListener struct {
	OnResponseCalls []struct {
		method string
		status int
		took   time.Duration
	}
	OnRequestFailedCalls []struct {
		method string
		err    error
	}
}

func (l *CountingEventListener) OnResponse(method string, status int, took time.Duration) {
	l.OnResponseCalls = append(l.OnResponseCalls, struct {
		method string
		status int
		took   time.Duration
	}{
		method: method,
		status: status,
		took:   took,
	})
}

func (l *CountingEventListener) OnRequestFailed(method string, err error) {
	l.OnRequestFailedCalls = append(l.OnRequestFailedCalls, struct {
		method string
		err    error
	}{
		method: method,
		err:    err,
	})
}
