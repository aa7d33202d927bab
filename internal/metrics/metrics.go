// Package metrics provides Prometheus metrics for wedosctl.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"gitlab.bluewillows.net/root/wedosapi/pkg/wapi"
)

// Namespace prefixes every metric exposed by wedosctl.
const Namespace = "wedosctl"

var (
	// BuildInfo exposes the running build as a constant gauge.
	BuildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "build_info",
		Help:      "Build information for the running wedosctl binary.",
	}, []string{"version", "go_version"})

	// APIRequestsTotal counts WAPI requests by command and outcome.
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wapi_requests_total",
		Help:      "Total WAPI requests by command and outcome.",
	}, []string{"command", "outcome"})

	// APIRequestDuration tracks WAPI round-trip latency by command.
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "wapi_request_duration_seconds",
		Help:      "WAPI request round-trip time in seconds by command.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"command"})
)

// SetBuildInfo records the build information gauge.
func SetBuildInfo(version, goVersion string) {
	BuildInfo.WithLabelValues(version, goVersion).Set(1)
}

// ObserveRequest records one completed WAPI request. Hook it into the
// client with wapi.WithObserver(metrics.ObserveRequest).
func ObserveRequest(stat wapi.RequestStat) {
	APIRequestsTotal.WithLabelValues(stat.Command, outcome(stat.Err)).Inc()
	APIRequestDuration.WithLabelValues(stat.Command).Observe(stat.Elapsed.Seconds())
}

// outcome classifies a request error into a low-cardinality label value.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case wapi.IsAuthError(err):
		return "auth_error"
	case wapi.IsNetworkError(err):
		return "network_error"
	case wapi.IsProtocolError(err):
		return "protocol_error"
	}
	if _, ok := wapi.AsAPIError(err); ok {
		return "api_error"
	}
	return "error"
}
