package wapi

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestFlexInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "number", input: `1000`, want: 1000},
		{name: "string", input: `"1000"`, want: 1000},
		{name: "zero", input: `0`, want: 0},
		{name: "empty string", input: `""`, want: 0},
		{name: "null", input: `null`, want: 0},
		{name: "negative", input: `"-5"`, want: -5},
		{name: "garbage", input: `"abc"`, wantErr: true},
		{name: "float", input: `10.5`, wantErr: true},
		{name: "object", input: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f flexInt
			err := json.Unmarshal([]byte(tt.input), &f)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %s, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if int64(f) != tt.want {
				t.Errorf("expected %d, got %d", tt.want, int64(f))
			}
		})
	}
}

func TestFlexBool(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr bool
	}{
		{name: "number one", input: `1`, want: true},
		{name: "number zero", input: `0`, want: false},
		{name: "string one", input: `"1"`, want: true},
		{name: "string zero", input: `"0"`, want: false},
		{name: "bool", input: `true`, want: true},
		{name: "string bool", input: `"false"`, want: false},
		{name: "empty string", input: `""`, want: false},
		{name: "null", input: `null`, want: false},
		{name: "garbage", input: `"maybe"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f flexBool
			err := json.Unmarshal([]byte(tt.input), &f)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %s, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if bool(f) != tt.want {
				t.Errorf("expected %v, got %v", tt.want, bool(f))
			}
		})
	}
}

func TestDecodeResponse(t *testing.T) {
	body := []byte(`{"response": {
		"code": 1000,
		"result": "OK",
		"timestamp": 1755000000,
		"clTRID": "ping",
		"svTRID": "JWFAG-250825",
		"command": "ping",
		"test": 1,
		"data": {"server": "wapi3"}
	}}`)

	resp, err := decodeResponse(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Code != CodeOK {
		t.Errorf("unexpected code: %d", resp.Code)
	}
	if resp.Result != "OK" {
		t.Errorf("unexpected result: %s", resp.Result)
	}
	if resp.Timestamp != 1755000000 {
		t.Errorf("unexpected timestamp: %d", resp.Timestamp)
	}
	if resp.ClTRID != "ping" || resp.SvTRID != "JWFAG-250825" {
		t.Errorf("unexpected transaction ids: %s / %s", resp.ClTRID, resp.SvTRID)
	}
	if !resp.Test {
		t.Error("expected test flag to be set")
	}
	if string(resp.Data) != `{"server": "wapi3"}` {
		t.Errorf("unexpected data: %s", resp.Data)
	}
}

func TestDecodeResponse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html></html>`},
		{name: "empty object", body: `{}`},
		{name: "null envelope", body: `{"response": null}`},
		{name: "missing code", body: `{"response": {"result": "OK"}}`},
		{name: "non numeric code", body: `{"response": {"code": "abc"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeResponse([]byte(tt.body))
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestResponse_Err(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		wantNil  bool
		wantAuth bool
	}{
		{name: "ok", code: CodeOK, wantNil: true},
		{name: "pending", code: CodePending, wantNil: true},
		{name: "upper success bound", code: 1999, wantNil: true},
		{name: "syntax error", code: 2000},
		{name: "auth failure", code: 2050, wantAuth: true},
		{name: "ip not allowed", code: 2051, wantAuth: true},
		{name: "wapi disabled", code: 2052, wantAuth: true},
		{name: "above auth range", code: 2053},
		{name: "internal error", code: 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &Response{Code: tt.code, Result: "x", Command: "ping"}
			err := resp.Err()

			if tt.wantNil {
				if err != nil {
					t.Errorf("expected nil, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := errors.Is(err, ErrUnauthorized); got != tt.wantAuth {
				t.Errorf("ErrUnauthorized match = %v, want %v", got, tt.wantAuth)
			}

			apiErr, ok := AsAPIError(err)
			if !ok {
				t.Fatalf("expected *APIError in chain, got %T", err)
			}
			if apiErr.Code != tt.code {
				t.Errorf("unexpected code: %d", apiErr.Code)
			}
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Code: 2050, Result: "Authentication failure", Command: "dns-domains-list"}
	want := "wapi dns-domains-list: 2050 Authentication failure"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	bare := &APIError{Code: 3000, Result: "Internal error"}
	if bare.Error() != "wapi: 3000 Internal error" {
		t.Errorf("unexpected message: %q", bare.Error())
	}
}

func TestConfigError_Error(t *testing.T) {
	err := ErrConfigMissing("user")
	want := "configuration error: user: required but not set"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	invalid := ErrConfigInvalid("timezone", "Mars/Olympus", "unknown location")
	if invalid.Error() != `configuration error: timezone="Mars/Olympus": unknown location` {
		t.Errorf("unexpected message: %q", invalid.Error())
	}
}
