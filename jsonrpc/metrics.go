package jsonrpc

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// NewMetricsListener returns an EventListener exporting per-method call
// latencies and failures through the given registerer. Nothing is
// registered on the default registry; embedders pick where the metrics
// live.
func NewMetricsListener(reg prometheus.Registerer) EventListener {
	requestLatencies := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rpc",
		Subsystem: "client",
		Name:      "request_latency",
	}, []string{"method", "status"})
	failedRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rpc",
		Subsystem: "client",
		Name:      "failed_requests",
	}, []string{"method", "kind"})
	reg.MustRegister(requestLatencies, failedRequests)

	return &SelectiveListener{
		OnResponseCb: func(method string, status int, took time.Duration) {
			statusString := strconv.FormatInt(int64(status), 10)
			requestLatencies.WithLabelValues(method, statusString).Observe(took.Seconds())
		},
		OnRequestFailedCb: func(method string, err error) {
			failedRequests.WithLabelValues(method, errorKind(err)).Inc()
		},
	}
}

func errorKind(err error) string {
	var rpcErr *Error
	var transportErr *TransportError
	switch {
	case errors.As(err, &rpcErr):
		return "rpc"
	case errors.As(err, &transportErr):
		return "transport"
	default:
		return "other"
	}
}
