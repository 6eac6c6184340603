package domain

import "strings"

// Role is a capability tag carried by an account.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
)

// Valid reports whether r is one of the roles the platform grants.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// ParseRole maps an authority string emitted by the auth backend onto a Role.
// The backend names doctors MEDECIN and may prefix authorities with ROLE_.
func ParseRole(s string) Role {
	r := strings.ToUpper(strings.TrimSpace(s))
	r = strings.TrimPrefix(r, "ROLE_")
	if r == "MEDECIN" {
		return RoleDoctor
	}
	return Role(r)
}

// ParseRoles converts the authority list of an auth response. Authorities
// that do not map onto a known role are dropped.
func ParseRoles(raw []string) []Role {
	roles := make([]Role, 0, len(raw))
	for _, s := range raw {
		if r := ParseRole(s); r.Valid() {
			roles = append(roles, r)
		}
	}
	return roles
}

// Profile is the minimal user projection persisted next to the tokens.
type Profile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Roles     []Role `json:"roles"`
}

// HasRole reports whether the profile carries r.
func (p Profile) HasRole(r Role) bool {
	for _, have := range p.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// HasKnownRole reports whether the profile carries at least one valid role.
func (p Profile) HasKnownRole() bool {
	for _, r := range p.Roles {
		if r.Valid() {
			return true
		}
	}
	return false
}
