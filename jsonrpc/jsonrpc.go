// Package jsonrpc implements a JSONRPC2.0 compliant HTTP client as described in https://www.jsonrpc.org/specification
package jsonrpc

import (
	"encoding/json"
)

const Version = "2.0"

const (
	InvalidJSON    = -32700 // Invalid JSON was received by the server.
	InvalidRequest = -32600 // The JSON sent is not a valid Request object.
	MethodNotFound = -32601 // The method does not exist / is not available.
	InvalidParams  = -32602 // Invalid method parameter(s).
	InternalError  = -32603 // Internal JSON-RPC error.
)

// Request is a single JSON-RPC call. Params is never omitted: an empty
// parameter list is sent as [], not null, since some servers reject the
// latter.
type Request struct {
	Version string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      uint64 `json:"id"`
}

// Response is the server's reply to a single Request. A well-formed
// response carries exactly one of Result and Error. Result distinguishes
// a missing member (nil) from an explicit null (RawMessage "null"); the
// latter is a successful call whose result is empty.
type Response struct {
	Version string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

// Error is reported by the server inside a well-formed response. It is
// returned to callers verbatim, with the code and any attached data
// preserved.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}
