package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rdv360/session-gateway/internal/core/domain"
	"github.com/rdv360/session-gateway/internal/core/ports"
)

const defaultSlotMinutes = 30

// AppointmentService wraps the appointments backend: /rdv, /medecins and /patients.
type AppointmentService struct {
	api    ports.Requester
	logger zerolog.Logger
}

func NewAppointmentService(api ports.Requester, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{api: api, logger: logger}
}

func (s *AppointmentService) ByPatient(ctx context.Context, patientID int64) ([]domain.Appointment, error) {
	var out []domain.Appointment
	if err := s.api.Do(ctx, http.MethodGet, fmt.Sprintf("/rdv/patient/%d", patientID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AppointmentService) ByDoctor(ctx context.Context, doctorID int64) ([]domain.Appointment, error) {
	var out []domain.Appointment
	if err := s.api.Do(ctx, http.MethodGet, fmt.Sprintf("/rdv/medecin/%d", doctorID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// All lists every appointment; admin only on the backend side.
func (s *AppointmentService) All(ctx context.Context) ([]domain.Appointment, error) {
	var out []domain.Appointment
	if err := s.api.Do(ctx, http.MethodGet, "/rdv", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AppointmentService) Create(ctx context.Context, req domain.CreateAppointmentRequest) (*domain.Appointment, error) {
	var out domain.Appointment
	if err := s.api.Do(ctx, http.MethodPost, "/rdv", req, &out); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("appointment_id", out.ID).Int64("doctor_id", req.DoctorID).Msg("appointment created")
	return &out, nil
}

func (s *AppointmentService) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (*domain.Appointment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	path := fmt.Sprintf("/rdv/%d/statut?nouveauStatut=%s", id, url.QueryEscape(string(status)))
	var out domain.Appointment
	if err := s.api.Do(ctx, http.MethodPatch, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AppointmentService) Cancel(ctx context.Context, id int64, reason string) error {
	path := fmt.Sprintf("/rdv/%d/annuler?motifAnnulation=%s", id, url.QueryEscape(reason))
	return s.api.Do(ctx, http.MethodPatch, path, nil, nil)
}

// FreeSlots lists the free start times of a doctor on date (YYYY-MM-DD).
// A non-positive duration uses 30 minutes.
func (s *AppointmentService) FreeSlots(ctx context.Context, doctorID int64, date string, durationMinutes int) ([]string, error) {
	if durationMinutes <= 0 {
		durationMinutes = defaultSlotMinutes
	}
	q := url.Values{}
	q.Set("medecinId", fmt.Sprint(doctorID))
	q.Set("date", date)
	q.Set("dureeEnMinutes", fmt.Sprint(durationMinutes))

	var out []string
	if err := s.api.Do(ctx, http.MethodGet, "/rdv/creneaux-libres?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Statistics fetches the planned, confirmed and completed counts in parallel.
func (s *AppointmentService) Statistics(ctx context.Context) (*domain.StatusCounts, error) {
	var counts domain.StatusCounts
	g, gctx := errgroup.WithContext(ctx)
	for status, dst := range map[domain.AppointmentStatus]*int64{
		domain.StatusPlanned:   &counts.Planned,
		domain.StatusConfirmed: &counts.Confirmed,
		domain.StatusCompleted: &counts.Completed,
	} {
		g.Go(func() error {
			return s.api.Do(gctx, http.MethodGet, "/rdv/statistiques/"+string(status), nil, dst)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	counts.Total = counts.Planned + counts.Confirmed + counts.Completed
	return &counts, nil
}

func (s *AppointmentService) Doctors(ctx context.Context) ([]domain.Doctor, error) {
	var out []domain.Doctor
	if err := s.api.Do(ctx, http.MethodGet, "/medecins", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AppointmentService) DoctorByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	var out domain.Doctor
	if err := s.api.Do(ctx, http.MethodGet, fmt.Sprintf("/medecins/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AppointmentService) DoctorsBySpecialty(ctx context.Context, specialty string) ([]domain.Doctor, error) {
	var out []domain.Doctor
	if err := s.api.Do(ctx, http.MethodGet, "/medecins/specialite/"+url.PathEscape(specialty), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AppointmentService) Patients(ctx context.Context) ([]domain.Patient, error) {
	var out []domain.Patient
	if err := s.api.Do(ctx, http.MethodGet, "/patients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AppointmentService) PatientByID(ctx context.Context, id int64) (*domain.Patient, error) {
	var out domain.Patient
	if err := s.api.Do(ctx, http.MethodGet, fmt.Sprintf("/patients/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePatient ignores p.ID; the backend assigns it.
func (s *AppointmentService) CreatePatient(ctx context.Context, p domain.Patient) (*domain.Patient, error) {
	p.ID = 0
	var out domain.Patient
	if err := s.api.Do(ctx, http.MethodPost, "/patients", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AppointmentService) UpdatePatient(ctx context.Context, id int64, p domain.Patient) (*domain.Patient, error) {
	var out domain.Patient
	if err := s.api.Do(ctx, http.MethodPut, fmt.Sprintf("/patients/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
