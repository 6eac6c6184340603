package validate

import (
	"strings"
	"testing"

	"github.com/rdv360/session-gateway/internal/core/domain"
)

func validRegistration() domain.RegistrationRequest {
	return domain.RegistrationRequest{
		Username:  "jdoe",
		Email:     "jdoe@example.com",
		Password:  "secret1",
		FirstName: "John",
		LastName:  "Doe",
		Role:      domain.RolePatient,
	}
}

func TestStruct_PatientWithoutDoctorFields(t *testing.T) {
	if err := Struct(validRegistration()); err != nil {
		t.Fatalf("expected valid patient registration, got %v", err)
	}
}

func TestStruct_DoctorRequiresSpecialtyAndLicense(t *testing.T) {
	req := validRegistration()
	req.Role = domain.RoleDoctor

	err := Struct(req)
	if err == nil {
		t.Fatalf("expected error for doctor without specialty")
	}
	if !strings.Contains(err.Error(), "specialty is required") || !strings.Contains(err.Error(), "licensenumber is required") {
		t.Fatalf("unexpected message: %v", err)
	}

	req.Specialty = "CARDIOLOGIE"
	req.LicenseNumber = "10003456789"
	if err := Struct(req); err != nil {
		t.Fatalf("expected valid doctor registration, got %v", err)
	}
}

func TestStruct_RejectsAdminRole(t *testing.T) {
	req := validRegistration()
	req.Role = domain.RoleAdmin

	err := Struct(req)
	if err == nil || !strings.Contains(err.Error(), "role must be one of") {
		t.Fatalf("expected oneof failure, got %v", err)
	}
}

func TestStruct_Credentials(t *testing.T) {
	if err := Struct(domain.Credentials{}); err == nil {
		t.Fatalf("expected error for empty credentials")
	}
	if err := Struct(domain.Credentials{Identifier: "doc", Password: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
