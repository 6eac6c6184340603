package ports

import (
	"context"

	"github.com/rdv360/session-gateway/internal/core/domain"
)

// AuthService translates auth operations into backend calls and owns the
// persisted session fields.
type AuthService interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error)
	Register(ctx context.Context, req domain.RegistrationRequest) (string, error)
	Logout(ctx context.Context) error
	RefreshToken(ctx context.Context) (*domain.AuthResponse, error)
	ValidateToken(ctx context.Context) bool
	CurrentUser(ctx context.Context) *domain.Profile
	Tokens(ctx context.Context) (domain.AuthTokens, bool)
}
