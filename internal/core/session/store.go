package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/rdv360/session-gateway/internal/core/domain"
	"github.com/rdv360/session-gateway/internal/core/ports"
)

// RefreshSkew is how close to expiry an access token is refreshed by EnsureFresh.
const RefreshSkew = 30 * time.Second

// Listener receives every state produced by a transition, in order.
// Listeners run synchronously on the dispatching goroutine and must not call
// store actions.
type Listener func(State)

type subscription struct {
	id int
	fn Listener
}

// Store owns the session of one client. Build it with NewStore and hand it
// to whatever drives the UI.
type Store struct {
	auth   ports.AuthService
	logger zerolog.Logger
	now    func() time.Time

	// dispatchMu orders transitions together with their notifications.
	dispatchMu sync.Mutex

	// hydrateMu is held exclusively by Initialize and shared by every other
	// action, so no action interleaves with hydration.
	hydrateMu sync.RWMutex
	hydrated  atomic.Bool

	mu        sync.RWMutex
	state     State
	listeners []subscription
	nextID    int
}

type Option func(*Store)

// WithClock replaces time.Now for session timestamps and token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(auth ports.AuthService, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		auth:   auth,
		logger: logger,
		now:    time.Now,
		state:  State{Status: StatusAnonymous},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Hydrated reports whether Initialize has completed at least once.
func (s *Store) Hydrated() bool {
	return s.hydrated.Load()
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) dispatch(a action) State {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	prev := s.state
	next := reduce(prev, a)
	s.state = next
	listeners := make([]subscription, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	s.logger.Debug().
		Str("action", a.kind.String()).
		Str("from", prev.Status.String()).
		Str("to", next.Status.String()).
		Msg("session transition")

	for _, sub := range listeners {
		sub.fn(next)
	}
	return next
}

// Initialize hydrates the store from persisted storage. A persisted session
// is kept only if it carries a known role and the backend still validates
// its token; otherwise it is logged out. Actions started meanwhile wait for
// it to finish.
func (s *Store) Initialize(ctx context.Context) State {
	s.hydrateMu.Lock()
	defer s.hydrateMu.Unlock()
	defer s.hydrated.Store(true)

	s.dispatch(action{kind: actionStart})

	tokens, ok := s.auth.Tokens(ctx)
	user := s.auth.CurrentUser(ctx)
	if !ok || user == nil {
		return s.dispatch(action{kind: actionLogout})
	}

	if !user.HasKnownRole() || !s.auth.ValidateToken(ctx) {
		s.logger.Info().Int64("user_id", user.ID).Msg("persisted session rejected, clearing")
		if err := s.auth.Logout(ctx); err != nil {
			s.logger.Error().Err(err).Msg("clear rejected session")
		}
		return s.dispatch(action{kind: actionLogout})
	}

	return s.dispatch(action{kind: actionSuccess, session: &domain.Session{
		Profile:      *user,
		IsEnabled:    true,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}})
}

// Login signs in and returns the new session. On failure the store is left
// Unauthenticated with the normalized message, and an *ActionError carrying
// the same message is returned.
func (s *Store) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	s.hydrateMu.RLock()
	defer s.hydrateMu.RUnlock()

	s.dispatch(action{kind: actionStart})

	resp, err := s.auth.Login(ctx, creds)
	if err == nil {
		err = s.checkGrant(ctx, resp)
	}
	if err != nil {
		ae := newActionError(err)
		s.dispatch(action{kind: actionFailure, err: ae.Message})
		return nil, ae
	}

	now := s.now().UTC()
	sess := &domain.Session{
		Profile:      resp.Profile(),
		IsEnabled:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
	s.dispatch(action{kind: actionSuccess, session: sess})
	s.logger.Info().Int64("user_id", sess.ID).Str("username", sess.Username).Msg("signed in")
	return sess, nil
}

// checkGrant rejects a sign-in response that cannot back an authenticated
// session and clears whatever it persisted.
func (s *Store) checkGrant(ctx context.Context, resp *domain.AuthResponse) error {
	var err error
	switch {
	case resp.AccessToken == "":
		err = domain.ErrNotAuthenticated
	case len(domain.ParseRoles(resp.Roles)) == 0:
		err = domain.ErrNoRoles
	default:
		return nil
	}
	if lerr := s.auth.Logout(ctx); lerr != nil {
		s.logger.Error().Err(lerr).Msg("clear unusable sign-in")
	}
	return err
}

// Register creates an account and returns the backend's confirmation.
// It never authenticates; an existing session is kept.
func (s *Store) Register(ctx context.Context, req domain.RegistrationRequest) (string, error) {
	s.hydrateMu.RLock()
	defer s.hydrateMu.RUnlock()

	s.dispatch(action{kind: actionStart})

	msg, err := s.auth.Register(ctx, req)
	if err != nil {
		ae := newActionError(err)
		s.dispatch(action{kind: actionFailure, err: ae.Message})
		return "", ae
	}
	s.dispatch(action{kind: actionLoadingDone})
	return msg, nil
}

// Logout always ends Unauthenticated without error. The returned error only
// reports persisted keys that could not be removed.
func (s *Store) Logout(ctx context.Context) error {
	s.hydrateMu.RLock()
	defer s.hydrateMu.RUnlock()

	err := s.auth.Logout(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("clear persisted session")
	}
	s.dispatch(action{kind: actionLogout})
	return err
}

// EnsureFresh refreshes the token pair when the access token expires within
// RefreshSkew, or unconditionally with force. Tokens whose expiry cannot be
// read are only refreshed when forced. A failed refresh signs the client out.
func (s *Store) EnsureFresh(ctx context.Context, force bool) (*domain.Session, error) {
	s.hydrateMu.RLock()
	defer s.hydrateMu.RUnlock()

	current := s.State()
	if !current.IsAuthenticated() {
		return nil, newActionError(domain.ErrNotAuthenticated)
	}
	if !force && !s.expiresSoon(current.Session.AccessToken) {
		return current.Session, nil
	}

	resp, err := s.auth.RefreshToken(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoRefreshToken) {
			if lerr := s.auth.Logout(ctx); lerr != nil {
				s.logger.Error().Err(lerr).Msg("clear session without refresh token")
			}
		}
		ae := newActionError(err)
		s.dispatch(action{kind: actionFailure, err: ae.Message})
		return nil, ae
	}

	next := *current.Session
	next.AccessToken = resp.AccessToken
	if resp.RefreshToken != "" {
		next.RefreshToken = resp.RefreshToken
	}
	if p := resp.Profile(); len(p.Roles) > 0 {
		p.FirstName, p.LastName = next.FirstName, next.LastName
		next.Profile = p
	}
	next.UpdatedAt = s.now().UTC()
	s.dispatch(action{kind: actionSuccess, session: &next})
	return &next, nil
}

func (s *Store) expiresSoon(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Time.Before(s.now().Add(RefreshSkew))
}
