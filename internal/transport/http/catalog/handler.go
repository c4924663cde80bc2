package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sculptstudio/atelier/internal/dto"
	"github.com/sculptstudio/atelier/internal/entity"
	"github.com/sculptstudio/atelier/internal/presentation/http/response"
	service "github.com/sculptstudio/atelier/internal/service/catalog"
	"github.com/sculptstudio/atelier/internal/transport/http/middleware"
	"github.com/sculptstudio/atelier/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/sculptstudio/atelier/transport/http/catalog")

// Handler exposes the product catalog over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a catalog Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance. Browsing is public,
// catalog management sits behind the admin guard.
func Register(e *echo.Echo, h *Handler, guard *middleware.AdminGuard) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.get)

	g := e.Group("/admin/products", guard.Require())
	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

type productPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Price       *float64 `json:"price"`
}

func (p productPayload) toInput() service.ProductInput {
	return service.ProductInput{
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Price:       p.Price,
	}
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "products.list")
	defer span.End()

	products, err := h.svc.List(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, toDTO(&products[i]))
	}
	return b.WithData(items).WithMeta("count", len(items)).Build()
}

func (h *Handler) get(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "products.get", trace.WithAttributes(
		attribute.String("product.id", c.Param("id")),
	))
	defer span.End()

	product, err := h.svc.Get(ctx, c.Param("id"))
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(toDTO(product)).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "products.create", trace.WithAttributes(
		attribute.String("product.category", payload.Category),
	))
	defer span.End()

	product, err := h.svc.Create(ctx, payload.toInput())
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(toDTO(product)).Build()
}

func (h *Handler) update(c echo.Context) error {
	b := response.New(c)

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "products.update", trace.WithAttributes(
		attribute.String("product.id", c.Param("id")),
	))
	defer span.End()

	product, err := h.svc.Update(ctx, c.Param("id"), payload.toInput())
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(toDTO(product)).Build()
}

func (h *Handler) delete(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "products.delete", trace.WithAttributes(
		attribute.String("product.id", c.Param("id")),
	))
	defer span.End()

	if err := h.svc.Delete(ctx, c.Param("id")); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithMeta("deleted", true).Build()
}

func toDTO(product *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          product.ID,
		Title:       product.Title,
		Description: product.Description,
		Category:    product.Category,
		Image:       product.Image,
		Price:       product.Price,
		CreatedAt:   product.CreatedAt,
	}
}
