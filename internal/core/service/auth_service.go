package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rdv360/session-gateway/internal/core/domain"
	"github.com/rdv360/session-gateway/internal/core/ports"
	"github.com/rdv360/session-gateway/internal/pkg/validate"
)

// AuthService signs the client in and out of the auth backend and keeps the
// persisted session keys in step with it.
type AuthService struct {
	api    ports.Requester
	store  ports.KeyValueStore
	logger zerolog.Logger
}

func NewAuthService(api ports.Requester, store ports.KeyValueStore, logger zerolog.Logger) *AuthService {
	return &AuthService{api: api, store: store, logger: logger}
}

// Wire shapes of the auth backend. The identifier travels in "email" and
// doctors register as MEDECIN.
type (
	signinRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	signupRequest struct {
		Username      string `json:"username"`
		Email         string `json:"email"`
		Password      string `json:"password"`
		FirstName     string `json:"firstName"`
		LastName      string `json:"lastName"`
		UserType      string `json:"userType"`
		Speciality    string `json:"speciality,omitempty"`
		LicenseNumber string `json:"licenseNumber,omitempty"`
	}
	refreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}
	validateRequest struct {
		Token string `json:"token"`
	}
)

// Login posts the credentials. When the response carries an access token the
// token pair and the user projection are persisted; failures leave storage untouched.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error) {
	if err := validate.Struct(creds); err != nil {
		return nil, domain.ErrMissingCredentials
	}

	var resp domain.AuthResponse
	err := s.api.Do(ctx, http.MethodPost, "/auth/signin", signinRequest{
		Email:    creds.Identifier,
		Password: creds.Password,
	}, &resp)
	if err != nil {
		s.logger.Warn().Err(err).Str("identifier", creds.Identifier).Msg("login failed")
		return nil, err
	}

	if resp.AccessToken != "" {
		if err := s.persist(ctx, resp.AccessToken, resp.RefreshToken, resp.Profile()); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}

// Register creates the account and returns the backend's confirmation
// message. Nothing is persisted; the caller must log in afterwards.
func (s *AuthService) Register(ctx context.Context, req domain.RegistrationRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidRegistration, err)
	}

	payload := signupRequest{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserType:  "PATIENT",
	}
	if req.Role == domain.RoleDoctor {
		payload.UserType = "MEDECIN"
		payload.Speciality = req.Specialty
		payload.LicenseNumber = req.LicenseNumber
	}

	var resp domain.MessageResponse
	if err := s.api.Do(ctx, http.MethodPost, "/auth/signup", payload, &resp); err != nil {
		s.logger.Warn().Err(err).Str("username", req.Username).Msg("registration failed")
		return "", err
	}
	return resp.Message, nil
}

// Logout tells the backend the session ends, then removes every persisted
// key whatever the outcome of that call. Only storage failures are returned.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.api.Do(ctx, http.MethodPost, "/auth/signout", nil, nil); err != nil {
		s.logger.Warn().Err(err).Msg("server sign-out failed, clearing local session anyway")
	}
	return s.clear(ctx)
}

// RefreshToken exchanges the persisted refresh token for a new pair. Any
// failure of the exchange logs the client out before being returned.
func (s *AuthService) RefreshToken(ctx context.Context) (*domain.AuthResponse, error) {
	refresh, ok, err := s.store.Get(ctx, ports.KeyRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("read refresh token: %w", err)
	}
	if !ok || refresh == "" {
		return nil, domain.ErrNoRefreshToken
	}

	var resp domain.AuthResponse
	if err := s.api.Do(ctx, http.MethodPost, "/auth/refresh", refreshRequest{RefreshToken: refresh}, &resp); err != nil {
		s.logger.Warn().Err(err).Msg("token refresh failed, logging out")
		if lerr := s.Logout(ctx); lerr != nil {
			s.logger.Error().Err(lerr).Msg("clear session after failed refresh")
		}
		return nil, err
	}

	if resp.RefreshToken != "" {
		refresh = resp.RefreshToken
	}
	profile := resp.Profile()
	if len(profile.Roles) == 0 {
		if current := s.CurrentUser(ctx); current != nil {
			profile = *current
		}
	}
	if err := s.persist(ctx, resp.AccessToken, refresh, profile); err != nil {
		return nil, err
	}
	resp.RefreshToken = refresh
	return &resp, nil
}

// ValidateToken asks the backend whether the persisted token is still valid.
// Without a token it answers false without any request; transport failures
// also answer false.
func (s *AuthService) ValidateToken(ctx context.Context) bool {
	token, ok := s.AccessToken(ctx)
	if !ok {
		return false
	}

	var resp domain.TokenValidation
	if err := s.api.Do(ctx, http.MethodPost, "/auth/validate", validateRequest{Token: token}, &resp); err != nil {
		s.logger.Warn().Err(err).Msg("token validation failed")
		return false
	}
	return resp.Valid
}

// CurrentUser returns the persisted user projection, or nil when it is absent
// or unreadable.
func (s *AuthService) CurrentUser(ctx context.Context) *domain.Profile {
	raw, ok, err := s.store.Get(ctx, ports.KeyUser)
	if err != nil || !ok {
		return nil
	}
	var p domain.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.logger.Warn().Err(err).Msg("persisted user is not valid JSON")
		return nil
	}
	return &p
}

// AccessToken returns the persisted access token.
func (s *AuthService) AccessToken(ctx context.Context) (string, bool) {
	token, ok, err := s.store.Get(ctx, ports.KeyAccessToken)
	if err != nil {
		s.logger.Warn().Err(err).Msg("read persisted access token failed")
		return "", false
	}
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// Tokens returns the persisted pair; ok is false without an access token.
func (s *AuthService) Tokens(ctx context.Context) (domain.AuthTokens, bool) {
	access, ok := s.AccessToken(ctx)
	if !ok {
		return domain.AuthTokens{}, false
	}
	refresh, _, err := s.store.Get(ctx, ports.KeyRefreshToken)
	if err != nil {
		s.logger.Warn().Err(err).Msg("read persisted refresh token failed")
	}
	return domain.AuthTokens{AccessToken: access, RefreshToken: refresh}, true
}

// IsAuthenticated holds when both a token and a readable user are persisted.
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.AccessToken(ctx)
	return ok && s.CurrentUser(ctx) != nil
}

func (s *AuthService) persist(ctx context.Context, access, refresh string, p domain.Profile) error {
	user, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.store.Set(ctx, ports.KeyAccessToken, access); err != nil {
		return fmt.Errorf("persist access token: %w", err)
	}
	if err := s.store.Set(ctx, ports.KeyRefreshToken, refresh); err != nil {
		return fmt.Errorf("persist refresh token: %w", err)
	}
	if err := s.store.Set(ctx, ports.KeyUser, string(user)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

func (s *AuthService) clear(ctx context.Context) error {
	var errs []error
	for _, key := range ports.SessionKeys {
		if err := s.store.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}
