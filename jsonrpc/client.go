package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NethermindEth/ethrpc/utils"
)

const DefaultTimeout = 10 * time.Second

// TransportError reports a failure to obtain a well-formed JSON-RPC
// response: connection errors, non-200 statuses and undecodable bodies.
// Server-reported failures are *Error instead.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return "transport error: " + e.Cause.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Client issues JSON-RPC 2.0 calls over HTTP POST. Calls share no state
// beyond the id counter, so a single client is safe for concurrent use.
type Client struct {
	endpoint  string
	client    *http.Client
	timeout   time.Duration
	userAgent string
	log       utils.StructuredLogger
	listener  EventListener
	idGen     func() uint64
	nextID    atomic.Uint64
}

func NewClient(endpoint string) *Client {
	c := &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		client:   http.DefaultClient,
		timeout:  DefaultTimeout,
		log:      utils.NewNopZapLogger(),
		listener: &SelectiveListener{},
	}
	c.idGen = func() uint64 {
		return c.nextID.Add(1)
	}
	return c
}

// NewTestClient returns a client backed by a stub server that answers
// every request with the given handler. The server is closed when the
// test finishes.
func NewTestClient(t *testing.T, handler http.Handler) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL)
}

func (c *Client) WithListener(l EventListener) *Client {
	c.listener = l
	return c
}

func (c *Client) WithLogger(log utils.StructuredLogger) *Client {
	c.log = log
	return c
}

func (c *Client) WithUserAgent(ua string) *Client {
	c.userAgent = ua
	return c
}

// WithTimeout caps the duration of each call. The deadline layers on
// top of whatever deadline the caller's context carries; zero disables
// the cap. There are no retries.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.timeout = d
	return c
}

func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.client = client
	return c
}

// WithIDGen replaces the request id source. The default is a counter
// starting at 1; ids only correlate a response with its request, so
// tests pin them to fixed values.
func (c *Client) WithIDGen(idGen func() uint64) *Client {
	c.idGen = idGen
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Call is CallContext with a background context.
func (c *Client) Call(result any, method string, params ...any) error {
	return c.CallContext(context.Background(), result, method, params...)
}

// CallContext invokes method with the given positional params and
// unmarshals the response's result member into result, which must be a
// pointer. A nil result discards the value. Params are positional only;
// an empty list is sent as [].
//
// Failures to complete the exchange are *TransportError, errors
// reported by the server are *Error. A "result": null reply is success
// and leaves a pointer target nil.
func (c *Client) CallContext(ctx context.Context, result any, method string, params ...any) error {
	if params == nil {
		params = []any{}
	}
	req := Request{
		Version: Version,
		Method:  method,
		Params:  params,
		ID:      c.idGen(),
	}
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqJSON))
	if err != nil {
		return &TransportError{Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if c.log.IsTraceEnabled() {
		c.log.Tracew("Sending RPC request", "request", string(reqJSON))
	}

	reqTimer := time.Now()
	httpRes, err := c.client.Do(httpReq)
	if err != nil {
		return c.failed(method, &TransportError{Cause: err})
	}
	defer httpRes.Body.Close()
	took := time.Since(reqTimer)
	c.listener.OnResponse(method, httpRes.StatusCode, took)

	body, err := io.ReadAll(httpRes.Body)
	if httpRes.StatusCode != http.StatusOK {
		if err == nil && len(body) > 0 {
			err = errors.New(string(body))
		} else {
			err = errors.New(httpRes.Status)
		}
		return c.failed(method, &TransportError{Cause: err})
	}
	if err != nil {
		return c.failed(method, &TransportError{Cause: err})
	}

	if c.log.IsTraceEnabled() {
		c.log.Tracew("Received RPC response", "response", string(body))
	}

	var res Response
	if err := json.Unmarshal(body, &res); err != nil {
		return c.failed(method, &TransportError{Cause: fmt.Errorf("unmarshal response: %w", err)})
	}

	if res.Error != nil {
		return c.failed(method, res.Error)
	}
	if res.Result == nil {
		return c.failed(method, &TransportError{Cause: errors.New("response is missing both result and error")})
	}

	c.log.Debugw("Completed RPC call", "method", method, "id", req.ID, "took", took)

	if utils.IsNil(result) {
		return nil
	}
	if err := json.Unmarshal(res.Result, result); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}
	return nil
}

// failed notifies the listener with the error about to be returned.
func (c *Client) failed(method string, err error) error {
	c.listener.OnRequestFailed(method, err)
	return err
}
