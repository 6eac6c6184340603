// Package roles maps a session's role set to capabilities and dashboard routes.
package roles

import "github.com/rdv360/session-gateway/internal/core/domain"

// Dashboard routes.
const (
	AdminPath   = "/admin"
	DoctorPath  = "/dashboard"
	PatientPath = "/patient"
	HomePath    = "/"
)

// HasRole is false for a nil session.
func HasRole(s *domain.Session, r domain.Role) bool {
	return s != nil && s.Profile.HasRole(r)
}

// HasAnyRole reports whether the session holds at least one of rs.
func HasAnyRole(s *domain.Session, rs ...domain.Role) bool {
	for _, r := range rs {
		if HasRole(s, r) {
			return true
		}
	}
	return false
}

func IsAdmin(s *domain.Session) bool   { return HasRole(s, domain.RoleAdmin) }
func IsDoctor(s *domain.Session) bool  { return HasRole(s, domain.RoleDoctor) }
func IsPatient(s *domain.Session) bool { return HasRole(s, domain.RolePatient) }

// RedirectPath picks the dashboard for s. ADMIN wins over DOCTOR, which wins
// over PATIENT, whatever the order of the role set.
func RedirectPath(s *domain.Session) string {
	switch {
	case IsAdmin(s):
		return AdminPath
	case IsDoctor(s):
		return DoctorPath
	case IsPatient(s):
		return PatientPath
	default:
		return HomePath
	}
}
