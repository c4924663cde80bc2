package analytics

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sculptstudio/atelier/internal/dto"
	"github.com/sculptstudio/atelier/internal/entity"
	bookingrepo "github.com/sculptstudio/atelier/internal/repository/booking"
	catalogrepo "github.com/sculptstudio/atelier/internal/repository/catalog"
	whatsapprepo "github.com/sculptstudio/atelier/internal/repository/whatsapp"
	"github.com/sculptstudio/atelier/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/sculptstudio/atelier/service/analytics")

// RequestCounter aggregates order requests per status.
type RequestCounter interface {
	CountByStatus(ctx context.Context) (map[entity.RequestStatus]int, error)
}

// OrderCounter aggregates WhatsApp orders per status.
type OrderCounter interface {
	CountByStatus(ctx context.Context) (map[entity.OrderStatus]int, error)
}

// CategoryCounter aggregates catalog products per category.
type CategoryCounter interface {
	CountByCategory(ctx context.Context) (map[string]int, error)
}

// Service assembles the dashboard overview from the three aggregate
// queries. It holds no state of its own.
type Service struct {
	requests   RequestCounter
	orders     OrderCounter
	categories CategoryCounter
	logger     *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Bookings *bookingrepo.Repository
	Orders   *whatsapprepo.Repository
	Catalog  *catalogrepo.Repository
	Logger   *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		requests:   p.Bookings,
		orders:     p.Orders,
		categories: p.Catalog,
		logger:     p.Logger,
	}
}

// Overview returns status breakdowns for both order pipelines and the
// per-category product counts, categories sorted by name.
func (s *Service) Overview(ctx context.Context) (*dto.AnalyticsResponse, error) {
	ctx, span := serviceTracer.Start(ctx, "AnalyticsService.Overview")
	defer span.End()

	requestCounts, err := s.requests.CountByStatus(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to count order requests", errorbank.WithCause(err))
	}

	orderCounts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to count whatsapp orders", errorbank.WithCause(err))
	}

	categoryCounts, err := s.categories.CountByCategory(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to count products", errorbank.WithCause(err))
	}

	categories := make([]dto.CategoryCount, 0, len(categoryCounts))
	for name, count := range categoryCounts {
		categories = append(categories, dto.CategoryCount{Name: name, Count: count})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })

	return &dto.AnalyticsResponse{
		OrderRequests:  requestBreakdown(requestCounts),
		WhatsAppOrders: orderBreakdown(orderCounts),
		Categories:     categories,
	}, nil
}

func requestBreakdown(counts map[entity.RequestStatus]int) dto.StatusBreakdown {
	b := dto.StatusBreakdown{
		New:       counts[entity.RequestStatusNew],
		InFlight:  counts[entity.RequestStatusInProgress],
		Completed: counts[entity.RequestStatusCompleted],
		Cancelled: counts[entity.RequestStatusCancelled],
	}
	for _, count := range counts {
		b.Total += count
	}
	return b
}

func orderBreakdown(counts map[entity.OrderStatus]int) dto.StatusBreakdown {
	b := dto.StatusBreakdown{
		New:       counts[entity.OrderStatusNew],
		InFlight:  counts[entity.OrderStatusProcessing],
		Completed: counts[entity.OrderStatusCompleted],
		Cancelled: counts[entity.OrderStatusCancelled],
	}
	for _, count := range counts {
		b.Total += count
	}
	return b
}
