package jsonrpc_test

import (
	"errors"
	"testing"
	"time"

	"github.com/NethermindEth/ethrpc/jsonrpc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsListener(t *testing.T) {
	reg := prometheus.NewRegistry()
	listener := jsonrpc.NewMetricsListener(reg)

	listener.OnResponse("eth_blockNumber", 200, 50*time.Millisecond)
	listener.OnResponse("eth_blockNumber", 200, 70*time.Millisecond)
	listener.OnResponse("eth_getBalance", 503, time.Second)

	listener.OnRequestFailed("eth_foo", &jsonrpc.Error{Code: jsonrpc.MethodNotFound, Message: "not found"})
	listener.OnRequestFailed("eth_blockNumber", &jsonrpc.TransportError{Cause: errors.New("connection refused")})
	listener.OnRequestFailed("eth_blockNumber", errors.New("boom"))

	assert.Equal(t, 2, testutil.CollectAndCount(reg, "rpc_client_request_latency"))

	metrics, err := reg.Gather()
	require.NoError(t, err)

	kinds := map[string]float64{}
	for _, family := range metrics {
		if family.GetName() != "rpc_client_failed_requests" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "kind" {
					kinds[label.GetValue()] += metric.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, map[string]float64{"rpc": 1, "transport": 1, "other": 1}, kinds)
}

func TestMetricsListenerRegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	jsonrpc.NewMetricsListener(reg)

	// Registering twice on the same registry must panic, proving the
	// collectors went to reg rather than the default registry.
	assert.Panics(t, func() { jsonrpc.NewMetricsListener(reg) })
	assert.NotPanics(t, func() { jsonrpc.NewMetricsListener(prometheus.NewRegistry()) })
}
