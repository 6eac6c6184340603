// Package session holds the client's authentication state machine.
//
//	Anonymous ──Initialize──▶ Loading ──▶ Authenticated | Unauthenticated
//	any ──Login/Register──▶ Loading ──▶ Authenticated | Unauthenticated{err}
//	any ──Logout──▶ Unauthenticated
package session

import "github.com/rdv360/session-gateway/internal/core/domain"

type Status int

const (
	StatusAnonymous Status = iota
	StatusLoading
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of the store. Session may be set while
// Loading when an authenticated client starts a new action.
type State struct {
	Status  Status
	Session *domain.Session
	// Err is the user-facing message of the last failed action.
	Err string
}

// IsAuthenticated holds only with a session carrying a token and a known role.
func (s State) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated && s.Session.IsAuthenticated() && s.Session.HasKnownRole()
}

func (s State) IsLoading() bool {
	return s.Status == StatusLoading
}

type actionKind int

const (
	actionStart actionKind = iota
	actionSuccess
	actionFailure
	actionLogout
	actionLoadingDone
)

func (k actionKind) String() string {
	return [...]string{"start", "success", "failure", "logout", "loading_done"}[k]
}

type action struct {
	kind    actionKind
	session *domain.Session
	err     string
}

// reduce is the transition function. It never mutates s.
func reduce(s State, a action) State {
	switch a.kind {
	case actionStart:
		return State{Status: StatusLoading, Session: s.Session}
	case actionSuccess:
		return State{Status: StatusAuthenticated, Session: a.session}
	case actionFailure:
		return State{Status: StatusUnauthenticated, Err: a.err}
	case actionLogout:
		return State{Status: StatusUnauthenticated}
	case actionLoadingDone:
		if s.Session.IsAuthenticated() && s.Session.HasKnownRole() {
			return State{Status: StatusAuthenticated, Session: s.Session}
		}
		return State{Status: StatusUnauthenticated}
	default:
		return s
	}
}
