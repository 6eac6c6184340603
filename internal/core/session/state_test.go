package session

import (
	"testing"

	"github.com/rdv360/session-gateway/internal/core/domain"
)

func TestReduce(t *testing.T) {
	sess := &domain.Session{Profile: domain.Profile{ID: 1, Roles: []domain.Role{domain.RolePatient}}, AccessToken: "T"}
	authed := State{Status: StatusAuthenticated, Session: sess}

	tests := []struct {
		name string
		from State
		act  action
		want State
	}{
		{"start keeps session", authed, action{kind: actionStart}, State{Status: StatusLoading, Session: sess}},
		{"start clears error", State{Status: StatusUnauthenticated, Err: "x"}, action{kind: actionStart}, State{Status: StatusLoading}},
		{"success", State{Status: StatusLoading}, action{kind: actionSuccess, session: sess}, authed},
		{"failure drops session", State{Status: StatusLoading, Session: sess}, action{kind: actionFailure, err: "boom"}, State{Status: StatusUnauthenticated, Err: "boom"}},
		{"logout", authed, action{kind: actionLogout}, State{Status: StatusUnauthenticated}},
		{"loading done with session", State{Status: StatusLoading, Session: sess}, action{kind: actionLoadingDone}, authed},
		{"loading done without session", State{Status: StatusLoading}, action{kind: actionLoadingDone}, State{Status: StatusUnauthenticated}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reduce(tt.from, tt.act); got != tt.want {
				t.Fatalf("got %+v want %+v", got, tt.want)
			}
		})
	}
}

func TestState_IsAuthenticated(t *testing.T) {
	noRoles := &domain.Session{AccessToken: "T"}
	noToken := &domain.Session{Profile: domain.Profile{Roles: []domain.Role{domain.RoleAdmin}}}
	unknownRole := &domain.Session{Profile: domain.Profile{Roles: []domain.Role{"USER"}}, AccessToken: "T"}

	for _, st := range []State{
		{Status: StatusAuthenticated},
		{Status: StatusAuthenticated, Session: noRoles},
		{Status: StatusAuthenticated, Session: noToken},
		{Status: StatusAuthenticated, Session: unknownRole},
		{Status: StatusLoading, Session: &domain.Session{Profile: domain.Profile{Roles: []domain.Role{domain.RoleAdmin}}, AccessToken: "T"}},
	} {
		if st.IsAuthenticated() {
			t.Fatalf("expected not authenticated: %+v", st)
		}
	}
}
