package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rdv360/session-gateway/internal/api/metrics"
	"github.com/rdv360/session-gateway/internal/core/domain"
	"github.com/rdv360/session-gateway/internal/core/roles"
	"github.com/rdv360/session-gateway/internal/core/session"
)

// SessionManager is the subset of *session.Store driven over HTTP.
type SessionManager interface {
	State() session.State
	Hydrated() bool
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
	Register(ctx context.Context, req domain.RegistrationRequest) (string, error)
	Logout(ctx context.Context) error
	EnsureFresh(ctx context.Context, force bool) (*domain.Session, error)
}

type SessionHandler struct {
	sessions SessionManager
	logger   zerolog.Logger
}

func NewSessionHandler(sessions SessionManager, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// sessionResponse is the snapshot rendered to the UI. Tokens never leave the gateway.
type sessionResponse struct {
	Status          string          `json:"status"`
	IsAuthenticated bool            `json:"isAuthenticated"`
	IsLoading       bool            `json:"isLoading"`
	User            *domain.Session `json:"user,omitempty"`
	Error           string          `json:"error,omitempty"`
	RedirectPath    string          `json:"redirectPath"`
}

func snapshot(st session.State) sessionResponse {
	resp := sessionResponse{
		Status:          st.Status.String(),
		IsAuthenticated: st.IsAuthenticated(),
		IsLoading:       st.IsLoading(),
		Error:           st.Err,
		RedirectPath:    roles.HomePath,
	}
	if resp.IsAuthenticated {
		resp.User = st.Session
		resp.RedirectPath = roles.RedirectPath(st.Session)
	}
	return resp
}

// Current returns the session snapshot.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, snapshot(h.sessions.State()))
}

// Login signs the client in.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Email or username and password"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      504   {object}  map[string]string
// @Router       /v1/session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	_, err := h.sessions.Login(c.Request().Context(), domain.Credentials{Identifier: req.Identifier, Password: req.Password})
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, snapshot(h.sessions.State()))
}

// Register creates an account. The client stays signed out.
//
// @Summary      Register
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      domain.RegistrationRequest  true  "Account details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/session/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req domain.RegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	msg, err := h.sessions.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

// Logout always succeeds for the caller.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context()); err != nil {
		h.logger.Warn().Err(err).Msg("logout left persisted keys behind")
	}
	return c.JSON(http.StatusOK, snapshot(h.sessions.State()))
}

// Refresh rotates the token pair when it is close to expiry, or always with ?force=true.
//
// @Summary      Refresh tokens
// @Tags         session
// @Produce      json
// @Param        force  query     bool  false  "Refresh even if the token is not about to expire"
// @Success      200    {object}  sessionResponse
// @Failure      401    {object}  map[string]string
// @Router       /v1/session/refresh [post]
func (h *SessionHandler) Refresh(c echo.Context) error {
	force, _ := strconv.ParseBool(c.QueryParam("force"))
	if _, err := h.sessions.EnsureFresh(c.Request().Context(), force); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot(h.sessions.State()))
}
