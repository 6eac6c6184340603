package ports

import (
	"context"

	"github.com/rdv360/session-gateway/internal/core/domain"
)

// AppointmentService wraps the appointments backend (/rdv, /medecins, /patients).
type AppointmentService interface {
	ByPatient(ctx context.Context, patientID int64) ([]domain.Appointment, error)
	ByDoctor(ctx context.Context, doctorID int64) ([]domain.Appointment, error)
	All(ctx context.Context) ([]domain.Appointment, error)
	Create(ctx context.Context, req domain.CreateAppointmentRequest) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error)
	Cancel(ctx context.Context, id int64, reason string) error
	FreeSlots(ctx context.Context, doctorID int64, date string, durationMinutes int) ([]string, error)
	Statistics(ctx context.Context) (*domain.StatusCounts, error)

	Doctors(ctx context.Context) ([]domain.Doctor, error)
	DoctorByID(ctx context.Context, id int64) (*domain.Doctor, error)
	DoctorsBySpecialty(ctx context.Context, specialty string) ([]domain.Doctor, error)

	Patients(ctx context.Context) ([]domain.Patient, error)
	PatientByID(ctx context.Context, id int64) (*domain.Patient, error)
	CreatePatient(ctx context.Context, p domain.Patient) (*domain.Patient, error)
	UpdatePatient(ctx context.Context, id int64, p domain.Patient) (*domain.Patient, error)
}

// AdminService wraps the admin statistics endpoints (/admin/stats/...).
type AdminService interface {
	Global(ctx context.Context) (*domain.GlobalStats, error)
	Period(ctx context.Context, from, to string) (*domain.PeriodStats, error)
	Doctors(ctx context.Context) (map[string]any, error)
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
	RecentActivity(ctx context.Context) (*domain.RecentActivity, error)
}
