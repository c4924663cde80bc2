package analytics

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/sculptstudio/atelier/internal/presentation/http/response"
	service "github.com/sculptstudio/atelier/internal/service/analytics"
	"github.com/sculptstudio/atelier/internal/transport/http/middleware"
)

var httpTracer = otel.Tracer("github.com/sculptstudio/atelier/transport/http/analytics")

// Handler exposes the dashboard analytics endpoint.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs an analytics Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler, guard *middleware.AdminGuard) {
	e.GET("/admin/analytics", h.overview, guard.Require())
}

func (h *Handler) overview(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "analytics.overview")
	defer span.End()

	overview, err := h.svc.Overview(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(overview).Build()
}
