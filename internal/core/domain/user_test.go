package domain

import (
	"reflect"
	"testing"
)

func TestParseRoles(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []Role
	}{
		{"backend aliases", []string{"ROLE_MEDECIN", "admin", " ROLE_PATIENT "}, []Role{RoleDoctor, RoleAdmin, RolePatient}},
		{"unknown authorities dropped", []string{"USER", "ROLE_NURSE", "DOCTOR"}, []Role{RoleDoctor}},
		{"only unknown", []string{"USER"}, []Role{}},
		{"empty", nil, []Role{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseRoles(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseRoles(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestProfile_HasKnownRole(t *testing.T) {
	if (Profile{Roles: []Role{"USER"}}).HasKnownRole() {
		t.Fatalf("USER is not a platform role")
	}
	if !(Profile{Roles: []Role{"USER", RolePatient}}).HasKnownRole() {
		t.Fatalf("expected PATIENT to count as a known role")
	}
}
