package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rdv360/session-gateway/internal/core/domain"
	"github.com/rdv360/session-gateway/internal/core/ports"
	"github.com/rdv360/session-gateway/internal/core/roles"
)

// AppointmentHandler exposes appointments, doctors and patients on behalf
// of the signed-in client.
type AppointmentHandler struct {
	svc ports.AppointmentService
}

func NewAppointmentHandler(svc ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

type statusRequest struct {
	Status domain.AppointmentStatus `json:"status" validate:"required"`
}

type cancelRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// List returns every appointment.
//
// @Summary      List all appointments
// @Tags         appointments
// @Produce      json
// @Success      200  {array}   domain.Appointment
// @Failure      403  {object}  map[string]string
// @Router       /v1/appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	out, err := h.svc.All(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// ByPatient lists the appointments of a patient. Patients only see their own.
//
// @Summary      Appointments of a patient
// @Tags         appointments
// @Produce      json
// @Param        id   path      int  true  "Patient ID"
// @Success      200  {array}   domain.Appointment
// @Router       /v1/appointments/patient/{id} [get]
func (h *AppointmentHandler) ByPatient(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := ownOnly(c, domain.RolePatient, id); err != nil {
		return err
	}
	out, err := h.svc.ByPatient(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// ByDoctor lists the appointments of a doctor. Doctors only see their own.
//
// @Summary      Appointments of a doctor
// @Tags         appointments
// @Produce      json
// @Param        id   path      int  true  "Doctor ID"
// @Success      200  {array}   domain.Appointment
// @Router       /v1/appointments/doctor/{id} [get]
func (h *AppointmentHandler) ByDoctor(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := ownOnly(c, domain.RoleDoctor, id); err != nil {
		return err
	}
	out, err := h.svc.ByDoctor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Create books an appointment.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        body  body      domain.CreateAppointmentRequest  true  "Appointment"
// @Success      201   {object}  domain.Appointment
// @Failure      400   {object}  map[string]string
// @Router       /v1/appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req domain.CreateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	out, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

// UpdateStatus moves an appointment to a new status.
//
// @Summary      Update appointment status
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Appointment ID"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  domain.Appointment
// @Router       /v1/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	out, err := h.svc.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Cancel cancels an appointment with a reason.
//
// @Summary      Cancel an appointment
// @Tags         appointments
// @Accept       json
// @Param        id    path  int            true  "Appointment ID"
// @Param        body  body  cancelRequest  true  "Reason"
// @Success      204
// @Router       /v1/appointments/{id}/cancel [patch]
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req cancelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Cancel(c.Request().Context(), id, req.Reason); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// FreeSlots lists free start times of a doctor on a day.
//
// @Summary      Free slots
// @Tags         appointments
// @Produce      json
// @Param        doctorId  query     int     true   "Doctor ID"
// @Param        date      query     string  true   "YYYY-MM-DD"
// @Param        duration  query     int     false  "Minutes, default 30"
// @Success      200       {array}   string
// @Router       /v1/appointments/slots [get]
func (h *AppointmentHandler) FreeSlots(c echo.Context) error {
	doctorID, err := strconv.ParseInt(c.QueryParam("doctorId"), 10, 64)
	if err != nil || doctorID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "doctorId must be a positive integer")
	}
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	duration, _ := strconv.Atoi(c.QueryParam("duration"))

	out, err := h.svc.FreeSlots(c.Request().Context(), doctorID, date, duration)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Statistics counts appointments per status.
//
// @Summary      Appointment counts
// @Tags         appointments
// @Produce      json
// @Success      200  {object}  domain.StatusCounts
// @Router       /v1/appointments/stats [get]
func (h *AppointmentHandler) Statistics(c echo.Context) error {
	out, err := h.svc.Statistics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Doctors lists doctors, optionally filtered with ?specialty=.
//
// @Summary      List doctors
// @Tags         doctors
// @Produce      json
// @Param        specialty  query     string  false  "Specialty"
// @Success      200        {array}   domain.Doctor
// @Router       /v1/doctors [get]
func (h *AppointmentHandler) Doctors(c echo.Context) error {
	var (
		out []domain.Doctor
		err error
	)
	if specialty := c.QueryParam("specialty"); specialty != "" {
		out, err = h.svc.DoctorsBySpecialty(c.Request().Context(), specialty)
	} else {
		out, err = h.svc.Doctors(c.Request().Context())
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Doctor returns one doctor.
//
// @Summary      Get doctor
// @Tags         doctors
// @Produce      json
// @Param        id   path      int  true  "Doctor ID"
// @Success      200  {object}  domain.Doctor
// @Router       /v1/doctors/{id} [get]
func (h *AppointmentHandler) Doctor(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.svc.DoctorByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Patients lists patients.
//
// @Summary      List patients
// @Tags         patients
// @Produce      json
// @Success      200  {array}  domain.Patient
// @Router       /v1/patients [get]
func (h *AppointmentHandler) Patients(c echo.Context) error {
	out, err := h.svc.Patients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Patient returns one patient.
//
// @Summary      Get patient
// @Tags         patients
// @Produce      json
// @Param        id   path      int  true  "Patient ID"
// @Success      200  {object}  domain.Patient
// @Router       /v1/patients/{id} [get]
func (h *AppointmentHandler) Patient(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.svc.PatientByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// CreatePatient registers a patient record.
//
// @Summary      Create patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Patient  true  "Patient"
// @Success      201   {object}  domain.Patient
// @Router       /v1/patients [post]
func (h *AppointmentHandler) CreatePatient(c echo.Context) error {
	var req domain.Patient
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	out, err := h.svc.CreatePatient(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

// UpdatePatient replaces a patient record.
//
// @Summary      Update patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Patient ID"
// @Param        body  body      domain.Patient  true  "Patient"
// @Success      200   {object}  domain.Patient
// @Router       /v1/patients/{id} [put]
func (h *AppointmentHandler) UpdatePatient(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req domain.Patient
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	out, err := h.svc.UpdatePatient(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// ownOnly restricts a session holding only role to the resource carrying
// its own user id. Sessions with any other role pass.
func ownOnly(c echo.Context, role domain.Role, id int64) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if roles.IsAdmin(sess) {
		return nil
	}
	if role == domain.RolePatient && roles.IsDoctor(sess) {
		return nil
	}
	if roles.HasRole(sess, role) && sess.ID != id {
		return domain.ErrForbidden
	}
	return nil
}
