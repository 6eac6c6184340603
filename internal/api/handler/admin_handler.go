package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rdv360/session-gateway/internal/core/domain"
	"github.com/rdv360/session-gateway/internal/core/ports"
	"github.com/rdv360/session-gateway/internal/core/service"
)

// AdminHandler serves the admin statistics.
type AdminHandler struct {
	svc ports.AdminService
}

func NewAdminHandler(svc ports.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

type dashboardResponse struct {
	*domain.DashboardStats
	Ratios    domain.Ratios         `json:"ratios"`
	Evolution []domain.MonthlyPoint `json:"evolution"`
}

// Global
//
// @Summary      Global statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.GlobalStats
// @Router       /v1/admin/stats/global [get]
func (h *AdminHandler) Global(c echo.Context) error {
	out, err := h.svc.Global(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Period
//
// @Summary      Statistics over a period
// @Tags         admin
// @Produce      json
// @Param        from  query     string  true  "YYYY-MM-DD"
// @Param        to    query     string  true  "YYYY-MM-DD"
// @Success      200   {object}  domain.PeriodStats
// @Router       /v1/admin/stats/period [get]
func (h *AdminHandler) Period(c echo.Context) error {
	from, to := c.QueryParam("from"), c.QueryParam("to")
	if from == "" || to == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "from and to are required")
	}
	out, err := h.svc.Period(c.Request().Context(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// @Summary      Per-doctor statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /v1/admin/stats/doctors [get]
func (h *AdminHandler) Doctors(c echo.Context) error {
	out, err := h.svc.Doctors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Dashboard adds the derived ratios and chart points to the backend aggregate.
//
// @Summary      Dashboard
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Router       /v1/admin/stats/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	out, err := h.svc.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		DashboardStats: out,
		Ratios:         service.CalculateRatios(out.Global),
		Evolution:      service.FormatEvolution(out.MonthlyHistory),
	})
}

// @Summary      Recent activity
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.RecentActivity
// @Router       /v1/admin/stats/recent [get]
func (h *AdminHandler) RecentActivity(c echo.Context) error {
	out, err := h.svc.RecentActivity(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Ratios
//
// @Summary      Cancellation, completion and confirmation rates
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.Ratios
// @Router       /v1/admin/stats/ratios [get]
func (h *AdminHandler) Ratios(c echo.Context) error {
	out, err := h.svc.Global(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, service.CalculateRatios(*out))
}
