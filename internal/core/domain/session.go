package domain

import "time"

// AuthTokens are the opaque bearer credentials issued by the auth backend.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Session is the authenticated identity held by the client for the current user.
type Session struct {
	Profile
	IsEnabled    bool      `json:"isEnabled"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
}

// IsAuthenticated holds when the session exists and carries an access token.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.AccessToken != ""
}

// Tokens returns the token pair of the session.
func (s *Session) Tokens() AuthTokens {
	if s == nil {
		return AuthTokens{}
	}
	return AuthTokens{AccessToken: s.AccessToken, RefreshToken: s.RefreshToken}
}

// AuthResponse is the JWT payload returned by /auth/signin and /auth/refresh.
type AuthResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	Type         string   `json:"type,omitempty"`
	ID           int64    `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	Roles        []string `json:"roles"`
}

// Profile projects the response onto the persisted user shape.
func (r *AuthResponse) Profile() Profile {
	return Profile{
		ID:       r.ID,
		Username: r.Username,
		Email:    r.Email,
		Roles:    ParseRoles(r.Roles),
	}
}

// Credentials are never persisted; Identifier is an email or a username.
type Credentials struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

// RegistrationRequest describes a new account. Specialty and LicenseNumber
// are required for doctors and ignored for patients.
type RegistrationRequest struct {
	Username      string `json:"username"                validate:"required,min=3"`
	Email         string `json:"email"                   validate:"required,email"`
	Password      string `json:"password"                validate:"required,min=6"`
	FirstName     string `json:"firstName"               validate:"required"`
	LastName      string `json:"lastName"                validate:"required"`
	Role          Role   `json:"role"                    validate:"required,oneof=PATIENT DOCTOR"`
	Specialty     string `json:"specialty,omitempty"     validate:"required_if=Role DOCTOR"`
	LicenseNumber string `json:"licenseNumber,omitempty" validate:"required_if=Role DOCTOR"`
}

// MessageResponse is the generic {"message": ...} envelope of the backends.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenValidation is the verdict returned by /auth/validate.
type TokenValidation struct {
	Valid       bool     `json:"valid"`
	Username    string   `json:"username,omitempty"`
	Email       string   `json:"email,omitempty"`
	Authorities []string `json:"authorities,omitempty"`
	UserID      int64    `json:"userId,omitempty"`
}
