package booking

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sculptstudio/atelier/internal/dto"
	"github.com/sculptstudio/atelier/internal/entity"
	"github.com/sculptstudio/atelier/internal/presentation/http/response"
	service "github.com/sculptstudio/atelier/internal/service/booking"
	"github.com/sculptstudio/atelier/internal/transport/http/middleware"
	"github.com/sculptstudio/atelier/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/sculptstudio/atelier/transport/http/booking")

// Handler exposes order request endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a booking Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance. Submission is public,
// the listing and status routes sit behind the admin guard.
func Register(e *echo.Echo, h *Handler, guard *middleware.AdminGuard) {
	e.POST("/bookings", h.submit)

	g := e.Group("/admin/order-requests", guard.Require())
	g.GET("", h.list)
	g.PATCH("/:id/status", h.updateStatus)
}

func (h *Handler) submit(c echo.Context) error {
	b := response.New(c)

	var payload struct {
		Name          string `json:"name"`
		Email         string `json:"email"`
		Phone         string `json:"phone"`
		ServiceType   string `json:"service_type"`
		StatueName    string `json:"statue_name"`
		SculptureSize string `json:"sculpture_size"`
		Description   string `json:"description"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "bookings.submit", trace.WithAttributes(
		attribute.String("booking.service_type", payload.ServiceType),
	))
	defer span.End()

	request, err := h.svc.Submit(ctx, service.SubmitInput{
		Name:          payload.Name,
		Email:         payload.Email,
		Phone:         payload.Phone,
		ServiceType:   payload.ServiceType,
		StatueName:    payload.StatueName,
		SculptureSize: payload.SculptureSize,
		Description:   payload.Description,
	})
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(toDTO(request)).Build()
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "bookings.list")
	defer span.End()

	requests, err := h.svc.List(ctx, c.QueryParam("q"))
	if err != nil {
		return b.WithError(err).Build()
	}

	items := make([]dto.OrderRequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, toDTO(&requests[i]))
	}
	return b.WithData(items).WithMeta("count", len(items)).Build()
}

func (h *Handler) updateStatus(c echo.Context) error {
	b := response.New(c)

	var payload struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "bookings.updateStatus", trace.WithAttributes(
		attribute.String("booking.id", c.Param("id")),
		attribute.String("booking.status", payload.Status),
	))
	defer span.End()

	request, err := h.svc.UpdateStatus(ctx, c.Param("id"), payload.Status)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toDTO(request)).Build()
}

func toDTO(request *entity.OrderRequest) dto.OrderRequestResponse {
	return dto.OrderRequestResponse{
		ID:            request.ID,
		Name:          request.Name,
		Email:         request.Email,
		Phone:         request.Phone,
		ServiceType:   request.ServiceType,
		StatueName:    request.StatueName,
		SculptureSize: request.SculptureSize,
		Description:   request.Description,
		Status:        string(request.Status),
		CreatedAt:     request.CreatedAt,
	}
}
