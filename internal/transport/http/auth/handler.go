package auth

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/sculptstudio/atelier/internal/dto"
	"github.com/sculptstudio/atelier/internal/presentation/http/response"
	service "github.com/sculptstudio/atelier/internal/service/auth"
	"github.com/sculptstudio/atelier/internal/transport/http/middleware"
	"github.com/sculptstudio/atelier/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/sculptstudio/atelier/transport/http/auth")

// Handler exposes admin session endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs an auth Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler, guard *middleware.AdminGuard) {
	e.POST("/admin/login", h.login)
	e.GET("/admin/session", h.session, guard.Require())
	e.POST("/admin/logout", h.logout, guard.Require())
}

func (h *Handler) login(c echo.Context) error {
	b := response.New(c)

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "auth.login")
	defer span.End()

	token, identity, err := h.svc.Login(ctx, payload.Email, payload.Password)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(dto.SessionResponse{Token: token, Email: identity.Email}).Build()
}

func (h *Handler) session(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	return response.New(c).WithData(dto.SessionResponse{Email: identity.Email}).Build()
}

func (h *Handler) logout(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "auth.logout")
	defer span.End()

	if err := h.svc.Logout(ctx, middleware.TokenFrom(c)); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithMeta("logged_out", true).Build()
}
