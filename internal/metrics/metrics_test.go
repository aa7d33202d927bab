package metrics

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"gitlab.bluewillows.net/root/wedosapi/pkg/wapi"
)

func TestSetBuildInfo(t *testing.T) {
	BuildInfo.Reset()

	SetBuildInfo("v1.0.0", "go1.24")

	count := testutil.CollectAndCount(BuildInfo)
	if count != 1 {
		t.Errorf("expected 1 metric, got %d", count)
	}

	value := testutil.ToFloat64(BuildInfo.WithLabelValues("v1.0.0", "go1.24"))
	if value != 1 {
		t.Errorf("expected value 1, got %f", value)
	}
}

func TestObserveRequest(t *testing.T) {
	APIRequestsTotal.Reset()
	APIRequestDuration.Reset()

	ObserveRequest(wapi.RequestStat{Command: "ping", Code: 1000, Elapsed: 20 * time.Millisecond})
	ObserveRequest(wapi.RequestStat{Command: "ping", Code: 1000, Elapsed: 30 * time.Millisecond})
	ObserveRequest(wapi.RequestStat{
		Command: "dns-domains-list",
		Code:    2050,
		Err:     fmt.Errorf("%w: denied", wapi.ErrUnauthorized),
		Elapsed: 10 * time.Millisecond,
	})

	success := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("ping", "success"))
	if success != 2 {
		t.Errorf("expected 2 ping successes, got %f", success)
	}

	authErrors := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("dns-domains-list", "auth_error"))
	if authErrors != 1 {
		t.Errorf("expected 1 auth error, got %f", authErrors)
	}

	// Two label sets observed: ping and dns-domains-list
	if count := testutil.CollectAndCount(APIRequestDuration); count != 2 {
		t.Errorf("expected 2 duration series, got %d", count)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "success",
			err:  nil,
			want: "success",
		},
		{
			name: "auth error",
			err:  fmt.Errorf("%w: %w", wapi.ErrUnauthorized, &wapi.APIError{Code: 2050, Result: "denied"}),
			want: "auth_error",
		},
		{
			name: "network error",
			err:  fmt.Errorf("%w: connection refused", wapi.ErrUnavailable),
			want: "network_error",
		},
		{
			name: "protocol error",
			err:  fmt.Errorf("%w: bad payload", wapi.ErrMalformedResponse),
			want: "protocol_error",
		},
		{
			name: "api error",
			err:  &wapi.APIError{Code: 2310, Result: "DNS record cannot be added"},
			want: "api_error",
		},
		{
			name: "unclassified error",
			err:  errors.New("boom"),
			want: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outcome(tt.err); got != tt.want {
				t.Errorf("outcome(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestMetricNames(t *testing.T) {
	expectedPrefix := "wedosctl_"

	metrics := []prometheus.Collector{
		BuildInfo,
		APIRequestsTotal,
		APIRequestDuration,
	}

	for _, m := range metrics {
		ch := make(chan *prometheus.Desc, 10)
		m.Describe(ch)
		close(ch)

		for desc := range ch {
			name := desc.String()
			if !strings.Contains(name, expectedPrefix) {
				t.Errorf("metric %s does not have expected prefix %s", name, expectedPrefix)
			}
		}
	}
}
