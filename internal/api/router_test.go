package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rdv360/session-gateway/internal/api/handler"
	"github.com/rdv360/session-gateway/internal/core/domain"
	"github.com/rdv360/session-gateway/internal/core/session"
)

// stubAuth implements ports.AuthService with a persisted session the backend rejects.
type stubAuth struct {
	logouts int
}

func (a *stubAuth) Login(context.Context, domain.Credentials) (*domain.AuthResponse, error) {
	return &domain.AuthResponse{AccessToken: "T1", RefreshToken: "R1", ID: 1, Username: "admin", Roles: []string{"ROLE_ADMIN"}}, nil
}

func (a *stubAuth) Register(context.Context, domain.RegistrationRequest) (string, error) {
	return "", nil
}

func (a *stubAuth) Logout(context.Context) error {
	a.logouts++
	return nil
}

func (a *stubAuth) RefreshToken(context.Context) (*domain.AuthResponse, error) {
	return nil, domain.ErrNoRefreshToken
}

func (a *stubAuth) ValidateToken(context.Context) bool { return false }

func (a *stubAuth) CurrentUser(context.Context) *domain.Profile {
	return &domain.Profile{ID: 1, Roles: []domain.Role{domain.RoleAdmin}}
}

func (a *stubAuth) Tokens(context.Context) (domain.AuthTokens, bool) {
	return domain.AuthTokens{AccessToken: "OLD"}, true
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

// The router registers prometheus collectors, so it is built once per binary.
func TestRouter_ServesOnlyAfterHydration(t *testing.T) {
	auth := &stubAuth{}
	sessions := session.NewStore(auth, zerolog.Nop())
	e := NewRouter(Dependencies{
		Sessions:  sessions,
		Readiness: map[string]handler.Pinger{"memory": okPinger{}},
		Logger:    zerolog.Nop(),
	})

	do := func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	if rec := do(http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness must not wait for hydration, got %d", rec.Code)
	}
	if rec := do(http.MethodGet, "/health/ready", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readiness before hydration: expected 503, got %d", rec.Code)
	}
	if rec := do(http.MethodPost, "/v1/session/login", `{"identifier":"admin","password":"secret"}`); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("login before hydration: expected 503, got %d", rec.Code)
	}

	sessions.Initialize(context.Background())
	if auth.logouts != 1 {
		t.Fatalf("expected the rejected persisted session to be cleared, logouts=%d", auth.logouts)
	}

	if rec := do(http.MethodGet, "/health/ready", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness after hydration: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := do(http.MethodGet, "/v1/admin/stats/global", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("protected route while signed out: expected 401, got %d", rec.Code)
	}

	rec := do(http.MethodPost, "/v1/session/login", `{"identifier":"admin","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login after hydration: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"redirectPath":"/admin"`) {
		t.Fatalf("unexpected snapshot %s", rec.Body.String())
	}
	if !sessions.State().IsAuthenticated() || auth.logouts != 1 {
		t.Fatalf("login must survive hydration, state=%+v logouts=%d", sessions.State(), auth.logouts)
	}
}
