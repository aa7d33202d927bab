package wapi

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Well-known WAPI result codes. Codes in [1000, 2000) indicate success.
const (
	CodeOK      = 1000
	CodePending = 1001
)

// Request describes a single WAPI command. Command is required. Data
// carries the command-specific payload and may be nil. ClTRID is the client
// transaction identifier echoed back by the API; when empty, the command
// name is sent.
type Request struct {
	Command string
	Data    any
	ClTRID  string
}

// requestBody is the wire form of a request. The API expects the command
// wrapped in a top-level "request" object, posted as the form field
// "request".
type requestBody struct {
	Request requestPayload `json:"request"`
}

type requestPayload struct {
	User    string `json:"user"`
	Auth    string `json:"auth"`
	Command string `json:"command"`
	ClTRID  string `json:"clTRID"`
	Test    int    `json:"test"`
	Data    any    `json:"data,omitempty"`
}

// Response is a decoded WAPI response envelope. Data holds the raw
// command-specific payload; typed client methods decode it further.
type Response struct {
	Code      int
	Result    string
	Timestamp int64
	ClTRID    string
	SvTRID    string
	Command   string
	Test      bool
	Data      json.RawMessage
}

// Succeeded reports whether the result code is in the success range.
func (r *Response) Succeeded() bool {
	return r.Code >= 1000 && r.Code < 2000
}

// Err returns nil for a success code and an *APIError otherwise.
// Authentication-class codes additionally match ErrUnauthorized.
func (r *Response) Err() error {
	if r.Succeeded() {
		return nil
	}
	apiErr := &APIError{Code: r.Code, Result: r.Result, Command: r.Command}
	if isAuthCode(r.Code) {
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	}
	return apiErr
}

// responseEnvelope mirrors the top-level "response" wrapper. The remote is
// a PHP service: numeric fields arrive as numbers or as decimal strings,
// and optional fields may be absent entirely.
type responseEnvelope struct {
	Response *responseBody `json:"response"`
}

type responseBody struct {
	Code      flexInt         `json:"code"`
	Result    string          `json:"result"`
	Timestamp flexInt         `json:"timestamp"`
	ClTRID    string          `json:"clTRID"`
	SvTRID    string          `json:"svTRID"`
	Command   string          `json:"command"`
	Test      flexBool        `json:"test"`
	Data      json.RawMessage `json:"data"`
}

// decodeResponse parses a raw body into a Response, rejecting payloads that
// do not carry the documented envelope.
func decodeResponse(body []byte) (*Response, error) {
	var env responseEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if env.Response == nil {
		return nil, fmt.Errorf("%w: missing response envelope", ErrMalformedResponse)
	}
	if env.Response.Code == 0 {
		return nil, fmt.Errorf("%w: missing result code", ErrMalformedResponse)
	}

	return &Response{
		Code:      int(env.Response.Code),
		Result:    env.Response.Result,
		Timestamp: int64(env.Response.Timestamp),
		ClTRID:    env.Response.ClTRID,
		SvTRID:    env.Response.SvTRID,
		Command:   env.Response.Command,
		Test:      bool(env.Response.Test),
		Data:      env.Response.Data,
	}, nil
}

// flexInt decodes a JSON number or a decimal string.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing %q as integer: %w", s, err)
		}
		*f = flexInt(n)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// flexBool decodes a JSON bool, a 0/1 number, or either as a string.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*f = false
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}

	switch s {
	case "", "0", "false":
		*f = false
	case "1", "true":
		*f = true
	default:
		return fmt.Errorf("parsing %q as boolean", s)
	}
	return nil
}
