package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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
	repo "github.com/sculptstudio/atelier/internal/repository/booking"
	"github.com/sculptstudio/atelier/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/sculptstudio/atelier/service/booking")

// EventKindOrderRequestCreated tags booking events on the shared topic.
const EventKindOrderRequestCreated = "order_request.created"

// Repository is the persistence surface the service needs.
type Repository interface {
	Create(ctx context.Context, request *entity.OrderRequest) error
	List(ctx context.Context, search string) ([]entity.OrderRequest, error)
	UpdateStatus(ctx context.Context, id string, status entity.RequestStatus) (*entity.OrderRequest, error)
}

// Service handles commission enquiries from the public booking form and
// the admin order-request screen.
type Service struct {
	repo      Repository
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
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:      p.Repository,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
	}
}

// SubmitInput carries the public booking-form fields.
type SubmitInput struct {
	Name          string
	Email         string
	Phone         string
	ServiceType   string
	StatueName    string
	SculptureSize string
	Description   string
}

// Submit validates and persists a new order request. Requests always enter
// the workflow in the "new" state.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*entity.OrderRequest, error) {
	if err := validateSubmit(input); err != nil {
		return nil, err
	}

	ctx, span := serviceTracer.Start(ctx, "BookingService.Submit", trace.WithAttributes(attribute.String("request.service_type", input.ServiceType)))
	defer span.End()

	request := &entity.OrderRequest{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(input.Name),
		Email:         strings.TrimSpace(input.Email),
		Phone:         strings.TrimSpace(input.Phone),
		ServiceType:   input.ServiceType,
		StatueName:    strings.TrimSpace(input.StatueName),
		SculptureSize: strings.TrimSpace(input.SculptureSize),
		Description:   strings.TrimSpace(input.Description),
		Status:        entity.RequestStatusNew,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, request); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to submit order request", errorbank.WithCause(err))
	}

	s.publishCreated(ctx, request)
	return request, nil
}

// List returns order requests newest-first, optionally narrowed by a
// case-insensitive search term.
func (s *Service) List(ctx context.Context, search string) ([]entity.OrderRequest, error) {
	ctx, span := serviceTracer.Start(ctx, "BookingService.List")
	defer span.End()

	requests, err := s.repo.List(ctx, search)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load order requests", errorbank.WithCause(err))
	}
	return requests, nil
}

// UpdateStatus moves a request to any valid workflow state. No transition
// graph applies; only membership in the enumeration is checked.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*entity.OrderRequest, error) {
	next := entity.RequestStatus(status)
	if !next.Valid() {
		return nil, errorbank.BadRequest("invalid status", errorbank.WithDetail("status", status))
	}
	if id == "" {
		return nil, errorbank.BadRequest("order request id is required")
	}

	ctx, span := serviceTracer.Start(ctx, "BookingService.UpdateStatus", trace.WithAttributes(
		attribute.String("request.id", id),
		attribute.String("request.status", status),
	))
	defer span.End()

	request, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("order request not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to update order request", errorbank.WithCause(err))
	}
	return request, nil
}

func validateSubmit(input SubmitInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return errorbank.BadRequest("name is required", errorbank.WithDetail("field", "name"))
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return errorbank.BadRequest("email is required", errorbank.WithDetail("field", "email"))
	}
	if !strings.Contains(email, "@") {
		return errorbank.BadRequest("email is invalid", errorbank.WithDetail("field", "email"))
	}
	if !entity.ValidServiceType(input.ServiceType) {
		return errorbank.BadRequest("unknown service type", errorbank.WithDetail("service_type", input.ServiceType))
	}
	if strings.TrimSpace(input.Description) == "" {
		return errorbank.BadRequest("description is required", errorbank.WithDetail("field", "description"))
	}
	return nil
}

func (s *Service) publishCreated(ctx context.Context, request *entity.OrderRequest) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := OrderRequestCreatedEvent{
		Kind:        EventKindOrderRequestCreated,
		ID:          request.ID,
		Name:        request.Name,
		ServiceType: request.ServiceType,
		Status:      string(request.Status),
		CreatedAt:   request.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("marshal order request created", zap.Error(err))
		}
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("request-%s", request.ID)), payload); err != nil {
		if s.logger != nil {
			s.logger.Error("publish order request created", zap.Error(err))
		}
	}
}

// OrderRequestCreatedEvent is emitted when a new commission enquiry is persisted.
type OrderRequestCreatedEvent struct {
	Kind        string    `json:"kind"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ServiceType string    `json:"service_type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
