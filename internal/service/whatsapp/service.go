package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sculptstudio/atelier/internal/config"
	"github.com/sculptstudio/atelier/internal/entity"
	"github.com/sculptstudio/atelier/internal/messaging"
	repo "github.com/sculptstudio/atelier/internal/repository/whatsapp"
	catalogsvc "github.com/sculptstudio/atelier/internal/service/catalog"
	"github.com/sculptstudio/atelier/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/sculptstudio/atelier/service/whatsapp")

// EventKindWhatsAppOrderCreated tags WhatsApp events on the shared topic.
const EventKindWhatsAppOrderCreated = "whatsapp_order.created"

// Repository is the persistence surface the service needs.
type Repository interface {
	Create(ctx context.Context, order *entity.WhatsAppOrder) error
	List(ctx context.Context) ([]entity.WhatsAppOrder, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.WhatsAppOrder, error)
}

// ProductReader resolves the product being ordered.
type ProductReader interface {
	Get(ctx context.Context, id string) (*entity.Product, error)
}

// Service turns a product order action into a recorded order plus an
// outbound wa.me deep link.
type Service struct {
	repo      Repository
	products  ProductReader
	phone     string
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
}

type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Catalog    *catalogsvc.Service
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:      p.Repository,
		products:  p.Catalog,
		phone:     p.Config.WhatsApp.PhoneNumber,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
	}
}

// OrderInput carries the contact details collected by the order dialog.
type OrderInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// PlaceOrder records a WhatsApp order for the given product and returns it
// together with the deep link to open. The row is written before the link
// is handed out, so an abandoned redirect still leaves a trace.
func (s *Service) PlaceOrder(ctx context.Context, productID string, input OrderInput) (*entity.WhatsAppOrder, string, error) {
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, "", errorbank.BadRequest("customer name is required", errorbank.WithDetail("field", "customer_name"))
	}

	ctx, span := serviceTracer.Start(ctx, "WhatsAppService.PlaceOrder", trace.WithAttributes(attribute.String("product.id", productID)))
	defer span.End()

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, "", err
	}

	order := &entity.WhatsAppOrder{
		ID:            uuid.NewString(),
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerEmail: strings.TrimSpace(input.CustomerEmail),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		ProductID:     product.ID,
		Status:        entity.OrderStatusNew,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, "", errorbank.Internal("failed to record whatsapp order", errorbank.WithCause(err))
	}

	s.publishCreated(ctx, order, product)
	return order, s.Link(product), nil
}

// Link builds the wa.me deep link carrying a pre-filled message for the
// product. No response from the messaging side is ever awaited.
func (s *Service) Link(product *entity.Product) string {
	message := fmt.Sprintf("Hello! I would like to order %q. %s", product.Title, product.Description)
	return fmt.Sprintf("https://wa.me/%s?text=%s", s.phone, url.QueryEscape(message))
}

// List returns WhatsApp orders newest-first.
func (s *Service) List(ctx context.Context) ([]entity.WhatsAppOrder, error) {
	ctx, span := serviceTracer.Start(ctx, "WhatsAppService.List")
	defer span.End()

	orders, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load whatsapp orders", errorbank.WithCause(err))
	}
	return orders, nil
}

// UpdateStatus moves an order to any valid workflow state.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*entity.WhatsAppOrder, error) {
	next := entity.OrderStatus(status)
	if !next.Valid() {
		return nil, errorbank.BadRequest("invalid status", errorbank.WithDetail("status", status))
	}
	if id == "" {
		return nil, errorbank.BadRequest("order id is required")
	}

	ctx, span := serviceTracer.Start(ctx, "WhatsAppService.UpdateStatus", trace.WithAttributes(
		attribute.String("order.id", id),
		attribute.String("order.status", status),
	))
	defer span.End()

	order, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("whatsapp order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to update whatsapp order", errorbank.WithCause(err))
	}
	return order, nil
}

func (s *Service) publishCreated(ctx context.Context, order *entity.WhatsAppOrder, product *entity.Product) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := WhatsAppOrderCreatedEvent{
		Kind:         EventKindWhatsAppOrderCreated,
		ID:           order.ID,
		CustomerName: order.CustomerName,
		ProductID:    order.ProductID,
		ProductTitle: product.Title,
		Status:       string(order.Status),
		CreatedAt:    order.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("marshal whatsapp order created", zap.Error(err))
		}
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("order-%s", order.ID)), payload); err != nil {
		if s.logger != nil {
			s.logger.Error("publish whatsapp order created", zap.Error(err))
		}
	}
}

// WhatsAppOrderCreatedEvent is emitted when a WhatsApp order is recorded.
type WhatsAppOrderCreatedEvent struct {
	Kind         string    `json:"kind"`
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	ProductID    string    `json:"product_id"`
	ProductTitle string    `json:"product_title"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
