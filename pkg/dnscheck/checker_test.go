package dnscheck

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/miekg/dns"
)

func TestNewChecker_Defaults(t *testing.T) {
	checker := NewChecker("")

	if checker.Server() != DefaultServer {
		t.Errorf("expected server %s, got %s", DefaultServer, checker.Server())
	}
	if checker.dnsClient.Timeout != DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultTimeout, checker.dnsClient.Timeout)
	}
	if checker.dnsClient.Net != "udp" {
		t.Errorf("expected udp transport, got %s", checker.dnsClient.Net)
	}
}

func TestNewChecker_Options(t *testing.T) {
	logger := slog.Default()
	checker := NewChecker("ns1.example.com",
		WithTimeout(2*time.Second),
		WithTCP(),
		WithLogger(logger),
	)

	if checker.Server() != "ns1.example.com:53" {
		t.Errorf("expected default port to be applied, got %s", checker.Server())
	}
	if checker.dnsClient.Timeout != 2*time.Second {
		t.Errorf("expected timeout 2s, got %v", checker.dnsClient.Timeout)
	}
	if checker.dnsClient.Net != "tcp" {
		t.Errorf("expected tcp transport, got %s", checker.dnsClient.Net)
	}
	if checker.logger != logger {
		t.Error("logger option not applied")
	}
}

func TestEnsurePort(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ns.wedos.com", "ns.wedos.com:53"},
		{"ns.wedos.com:5353", "ns.wedos.com:5353"},
		{"192.0.2.1", "192.0.2.1:53"},
		{"[2001:db8::1]", "[2001:db8::1]:53"},
		{"[2001:db8::1]:5353", "[2001:db8::1]:5353"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ensurePort(tt.input); got != tt.want {
				t.Errorf("ensurePort(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCheckRcode(t *testing.T) {
	tests := []struct {
		name    string
		rcode   int
		wantErr error
	}{
		{name: "success", rcode: dns.RcodeSuccess, wantErr: nil},
		{name: "nxdomain", rcode: dns.RcodeNameError, wantErr: ErrNotFound},
		{name: "servfail", rcode: dns.RcodeServerFailure, wantErr: ErrServerFailure},
		{name: "refused", rcode: dns.RcodeRefused, wantErr: ErrServerFailure},
		{name: "notauth", rcode: dns.RcodeNotAuth, wantErr: ErrServerFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := new(dns.Msg)
			resp.Rcode = tt.rcode

			err := checkRcode(resp)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCheckRcode_NilResponse(t *testing.T) {
	if err := checkRcode(nil); !errors.Is(err, ErrUnreachable) {
		t.Errorf("expected ErrUnreachable, got %v", err)
	}
}

func TestRdataString(t *testing.T) {
	tests := []struct {
		name string
		rr   string
		want string
	}{
		{name: "A", rr: "www.example.com. 300 IN A 192.0.2.10", want: "192.0.2.10"},
		{name: "AAAA", rr: "www.example.com. 300 IN AAAA 2001:db8::1", want: "2001:db8::1"},
		{name: "CNAME", rr: "www.example.com. 300 IN CNAME example.com.", want: "example.com."},
		{name: "NS", rr: "example.com. 300 IN NS ns.wedos.com.", want: "ns.wedos.com."},
		{name: "TXT", rr: `example.com. 300 IN TXT "v=spf1 -all"`, want: "v=spf1 -all"},
		{name: "MX", rr: "example.com. 300 IN MX 10 mail.example.com.", want: "10 mail.example.com."},
		{name: "SSHFP", rr: "example.com. 300 IN SSHFP 4 2 aa00bb11", want: "4 2 AA00BB11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, err := dns.NewRR(tt.rr)
			if err != nil {
				t.Fatalf("building rr: %v", err)
			}
			if got := rdataString(rr); !equalData(got, tt.want) {
				t.Errorf("rdataString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEqualData(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"example.com.", "example.com", true},
		{"Example.COM", "example.com", true},
		{"192.0.2.10", "192.0.2.10", true},
		{" 192.0.2.10 ", "192.0.2.10", true},
		{"192.0.2.10", "192.0.2.11", false},
		{"mail.example.com", "example.com", false},
	}

	for _, tt := range tests {
		if got := equalData(tt.a, tt.b); got != tt.want {
			t.Errorf("equalData(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLookup_UnsupportedType(t *testing.T) {
	checker := NewChecker("127.0.0.1:1")

	_, err := checker.Lookup(context.Background(), "www.example.com", "BOGUS")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestWaitFor_ContextCancelled(t *testing.T) {
	// Exchange failures are tolerated between polls, so an unreachable
	// server exercises the context exit.
	checker := NewChecker("127.0.0.1:1", WithTimeout(50*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := checker.WaitFor(ctx, "www.example.com", "A", "192.0.2.10", 10*time.Millisecond)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
