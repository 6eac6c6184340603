package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/rdv360/session-gateway/docs"
	"github.com/rdv360/session-gateway/internal/api/handler"
	"github.com/rdv360/session-gateway/internal/api/middleware"
	"github.com/rdv360/session-gateway/internal/core/domain"
	"github.com/rdv360/session-gateway/internal/core/ports"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Sessions     handler.SessionManager
	Appointments ports.AppointmentService
	Admin        ports.AdminService
	// Readiness lists the dependencies pinged by /health/ready.
	Readiness map[string]handler.Pinger
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddleware("rdv360_gateway"))

	// --- Health probes, metrics and docs (no session required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness, deps.Sessions.Hydrated)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – storage up and session hydrated?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1", middleware.RequireHydrated(deps.Sessions))

	// --- Session ---
	sessionHandler := handler.NewSessionHandler(deps.Sessions, deps.Logger)
	v1.GET("/session", sessionHandler.Current)
	v1.POST("/session/login", sessionHandler.Login)
	v1.POST("/session/register", sessionHandler.Register)
	v1.POST("/session/logout", sessionHandler.Logout)
	v1.POST("/session/refresh", sessionHandler.Refresh)

	requireSession := middleware.RequireSession(deps.Sessions)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleDoctor, domain.RolePatient)
	staff := middleware.RBAC(domain.RoleAdmin, domain.RoleDoctor)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Appointments ---
	appointmentHandler := handler.NewAppointmentHandler(deps.Appointments)
	appts := v1.Group("/appointments", requireSession)
	appts.GET("", appointmentHandler.List, adminOnly)
	appts.POST("", appointmentHandler.Create, anyRole)
	appts.GET("/slots", appointmentHandler.FreeSlots, anyRole)
	appts.GET("/stats", appointmentHandler.Statistics, staff)
	appts.GET("/patient/:id", appointmentHandler.ByPatient, anyRole)
	appts.GET("/doctor/:id", appointmentHandler.ByDoctor, staff)
	appts.PATCH("/:id/status", appointmentHandler.UpdateStatus, staff)
	appts.PATCH("/:id/cancel", appointmentHandler.Cancel, anyRole)

	// --- Doctors (public directory) ---
	v1.GET("/doctors", appointmentHandler.Doctors)
	v1.GET("/doctors/:id", appointmentHandler.Doctor)

	// --- Patients ---
	patients := v1.Group("/patients", requireSession)
	patients.GET("", appointmentHandler.Patients, staff)
	patients.GET("/:id", appointmentHandler.Patient, staff)
	patients.POST("", appointmentHandler.CreatePatient, adminOnly)
	patients.PUT("/:id", appointmentHandler.UpdatePatient, adminOnly)

	// --- Admin statistics ---
	adminHandler := handler.NewAdminHandler(deps.Admin)
	stats := v1.Group("/admin/stats", requireSession, adminOnly)
	stats.GET("/global", adminHandler.Global)
	stats.GET("/period", adminHandler.Period)
	stats.GET("/doctors", adminHandler.Doctors)
	stats.GET("/dashboard", adminHandler.Dashboard)
	stats.GET("/recent", adminHandler.RecentActivity)
	stats.GET("/ratios", adminHandler.Ratios)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
