// Package metrics defines the custom Prometheus metrics of the session
// gateway. HTTP request metrics come from the echoprometheus middleware and
// outgoing backend calls are measured by the API client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rdv360/session-gateway/internal/core/session"
)

const namespace = "rdv360"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts session store transitions.
// Label:
//   - to: the resulting status ("loading", "authenticated", "unauthenticated")
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session state transitions, by resulting status.",
	},
	[]string{"to"},
)

// SessionAuthenticated is 1 while the gateway holds an authenticated session.
var SessionAuthenticated = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_authenticated",
		Help:      "Whether the gateway currently holds an authenticated session.",
	},
)

// LoginAttemptsTotal counts login calls received by the gateway.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ObserveSession is a session.Listener feeding the session metrics.
func ObserveSession(st session.State) {
	SessionTransitionsTotal.WithLabelValues(st.Status.String()).Inc()
	if st.IsAuthenticated() {
		SessionAuthenticated.Set(1)
	} else {
		SessionAuthenticated.Set(0)
	}
}
