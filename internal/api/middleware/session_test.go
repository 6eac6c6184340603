package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/rdv360/session-gateway/internal/core/domain"
	"github.com/rdv360/session-gateway/internal/core/session"
)

type stubState struct{ st session.State }

func (s stubState) State() session.State { return s.st }

func TestRequireSession_Rejects(t *testing.T) {
	for name, st := range map[string]session.State{
		"anonymous":       {Status: session.StatusAnonymous},
		"loading":         {Status: session.StatusLoading, Session: sessionWith(domain.RoleDoctor)},
		"unauthenticated": {Status: session.StatusUnauthenticated, Err: "boom"},
	} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

			handler := RequireSession(stubState{st})(func(echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})
			if err := handler(c); !errors.Is(err, domain.ErrNotAuthenticated) {
				t.Fatalf("expected ErrNotAuthenticated, got %v", err)
			}
		})
	}
}

func TestRequireSession_InjectsSession(t *testing.T) {
	sess := sessionWith(domain.RoleDoctor)
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	var got *domain.Session
	handler := RequireSession(stubState{session.State{Status: session.StatusAuthenticated, Session: sess}})(func(c echo.Context) error {
		got, _ = c.Get("session").(*domain.Session)
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got != sess {
		t.Fatalf("session not injected")
	}
}

type stubHydration bool

func (h stubHydration) Hydrated() bool { return bool(h) }

func TestRequireHydrated(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/session/login", nil), rec)
	blocked := RequireHydrated(stubHydration(false))(func(echo.Context) error {
		t.Fatalf("should not reach next handler before hydration")
		return nil
	})
	err := blocked(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %v", err)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}

	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/session/login", nil), httptest.NewRecorder())
	reached := false
	passed := RequireHydrated(stubHydration(true))(func(echo.Context) error {
		reached = true
		return nil
	})
	if err := passed(c); err != nil || !reached {
		t.Fatalf("expected pass-through once hydrated, err=%v reached=%v", err, reached)
	}
}
