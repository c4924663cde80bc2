package whatsapp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sculptstudio/atelier/internal/dto"
	"github.com/sculptstudio/atelier/internal/entity"
	"github.com/sculptstudio/atelier/internal/presentation/http/response"
	service "github.com/sculptstudio/atelier/internal/service/whatsapp"
	"github.com/sculptstudio/atelier/internal/transport/http/middleware"
	"github.com/sculptstudio/atelier/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/sculptstudio/atelier/transport/http/whatsapp")

// Handler exposes the WhatsApp order flow over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a WhatsApp Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance. Placing an order is
// public, the order book sits behind the admin guard.
func Register(e *echo.Echo, h *Handler, guard *middleware.AdminGuard) {
	e.POST("/products/:id/whatsapp-order", h.place)

	g := e.Group("/admin/whatsapp-orders", guard.Require())
	g.GET("", h.list)
	g.PATCH("/:id/status", h.updateStatus)
}

func (h *Handler) place(c echo.Context) error {
	b := response.New(c)

	var payload struct {
		CustomerName  string `json:"customer_name"`
		CustomerEmail string `json:"customer_email"`
		CustomerPhone string `json:"customer_phone"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "whatsapp.place", trace.WithAttributes(
		attribute.String("product.id", c.Param("id")),
	))
	defer span.End()

	order, link, err := h.svc.PlaceOrder(ctx, c.Param("id"), service.OrderInput{
		CustomerName:  payload.CustomerName,
		CustomerEmail: payload.CustomerEmail,
		CustomerPhone: payload.CustomerPhone,
	})
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(dto.WhatsAppRedirectResponse{
		Order: toDTO(order),
		Link:  link,
	}).Build()
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "whatsapp.list")
	defer span.End()

	orders, err := h.svc.List(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	items := make([]dto.WhatsAppOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, toDTO(&orders[i]))
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

	ctx, span := httpTracer.Start(c.Request().Context(), "whatsapp.updateStatus", trace.WithAttributes(
		attribute.String("order.id", c.Param("id")),
		attribute.String("order.status", payload.Status),
	))
	defer span.End()

	order, err := h.svc.UpdateStatus(ctx, c.Param("id"), payload.Status)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(toDTO(order)).Build()
}

func toDTO(order *entity.WhatsAppOrder) dto.WhatsAppOrderResponse {
	return dto.WhatsAppOrderResponse{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		ProductID:     order.ProductID,
		Status:        string(order.Status),
		CreatedAt:     order.CreatedAt,
	}
}
