package apiclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rdv360"

// RequestsTotal counts outgoing backend requests.
// Labels:
//   - client: backend name ("auth", "rdv")
//   - method: HTTP method
//   - status: response code, "timeout" or "network_error"
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api_client",
		Name:      "requests_total",
		Help:      "Total number of backend requests, by client, method and outcome.",
	},
	[]string{"client", "method", "status"},
)

// RequestDuration measures backend round trips, failures included.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "api_client",
		Name:      "request_duration_seconds",
		Help:      "Duration of backend requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"client", "method"},
)
