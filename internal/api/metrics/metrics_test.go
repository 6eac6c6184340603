package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/rdv360/session-gateway/internal/core/domain"
	"github.com/rdv360/session-gateway/internal/core/session"
)

func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	if out.Counter != nil {
		return out.Counter.GetValue()
	}
	return out.Gauge.GetValue()
}

func TestObserveSession(t *testing.T) {
	before := value(t, SessionTransitionsTotal.WithLabelValues("authenticated"))

	ObserveSession(session.State{
		Status:  session.StatusAuthenticated,
		Session: &domain.Session{Profile: domain.Profile{Roles: []domain.Role{domain.RoleAdmin}}, AccessToken: "T"},
	})
	if got := value(t, SessionTransitionsTotal.WithLabelValues("authenticated")); got != before+1 {
		t.Fatalf("expected counter incremented, got %v (before %v)", got, before)
	}
	if got := value(t, SessionAuthenticated); got != 1 {
		t.Fatalf("expected gauge 1, got %v", got)
	}

	ObserveSession(session.State{Status: session.StatusUnauthenticated})
	if got := value(t, SessionAuthenticated); got != 0 {
		t.Fatalf("expected gauge 0, got %v", got)
	}
}
