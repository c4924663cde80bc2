package catalog

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

	"github.com/sculptstudio/atelier/internal/cache"
	"github.com/sculptstudio/atelier/internal/config"
	"github.com/sculptstudio/atelier/internal/entity"
	repo "github.com/sculptstudio/atelier/internal/repository/catalog"
	"github.com/sculptstudio/atelier/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/sculptstudio/atelier/service/catalog")

// Repository is the persistence surface the service needs.
type Repository interface {
	Create(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}

// Service manages the sculpture catalog.
type Service struct {
	repo     Repository
	cache    cache.Store
	cacheTTL time.Duration
	logger   *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:     p.Repository,
		cache:    p.Cache,
		cacheTTL: p.Config.Cache.DefaultTTL,
		logger:   p.Logger,
	}
}

// ProductInput carries the editable product fields. A nil price marks an
// enquiry-only piece.
type ProductInput struct {
	Title       string
	Description string
	Category    string
	Image       string
	Price       *float64
}

// Create validates and persists a new catalog product.
func (s *Service) Create(ctx context.Context, input ProductInput) (*entity.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	ctx, span := serviceTracer.Start(ctx, "CatalogService.Create", trace.WithAttributes(attribute.String("product.title", input.Title)))
	defer span.End()

	product := &entity.Product{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Image:       strings.TrimSpace(input.Image),
		Price:       input.Price,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to create product", errorbank.WithCause(err))
	}

	s.storeInCache(ctx, product)
	return product, nil
}

// List returns all products newest-first.
func (s *Service) List(ctx context.Context) ([]entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "CatalogService.List")
	defer span.End()

	products, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load products", errorbank.WithCause(err))
	}
	return products, nil
}

// Get retrieves a product by id, consulting cache when available.
func (s *Service) Get(ctx context.Context, id string) (*entity.Product, error) {
	if id == "" {
		return nil, errorbank.BadRequest("product id is required")
	}

	ctx, span := serviceTracer.Start(ctx, "CatalogService.Get", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	if product, err := s.getFromCache(ctx, id); err == nil {
		return product, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		if s.logger != nil {
			s.logger.Warn("products cache read failed", zap.String("id", id), zap.Error(err))
		}
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("product not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load product", errorbank.WithCause(err))
	}

	s.storeInCache(ctx, product)
	return product, nil
}

// Update rewrites a product's editable fields.
func (s *Service) Update(ctx context.Context, id string, input ProductInput) (*entity.Product, error) {
	if id == "" {
		return nil, errorbank.BadRequest("product id is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	ctx, span := serviceTracer.Start(ctx, "CatalogService.Update", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	product := &entity.Product{
		ID:          id,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Image:       strings.TrimSpace(input.Image),
		Price:       input.Price,
	}

	stored, err := s.repo.Update(ctx, product)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("product not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to update product", errorbank.WithCause(err))
	}

	s.storeInCache(ctx, stored)
	return stored, nil
}

// Delete removes a product. The cached copy goes with it.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errorbank.BadRequest("product id is required")
	}

	ctx, span := serviceTracer.Start(ctx, "CatalogService.Delete", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorbank.NotFound("product not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to delete product", errorbank.WithCause(err))
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, s.cacheKey(id)); err != nil && s.logger != nil {
			s.logger.Warn("products cache delete failed", zap.String("id", id), zap.Error(err))
		}
	}
	return nil
}

func validateInput(input ProductInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return errorbank.BadRequest("title is required", errorbank.WithDetail("field", "title"))
	}
	if strings.TrimSpace(input.Category) == "" {
		return errorbank.BadRequest("category is required", errorbank.WithDetail("field", "category"))
	}
	if strings.TrimSpace(input.Description) == "" {
		return errorbank.BadRequest("description is required", errorbank.WithDetail("field", "description"))
	}
	if strings.TrimSpace(input.Image) == "" {
		return errorbank.BadRequest("image is required", errorbank.WithDetail("field", "image"))
	}
	if input.Price != nil && *input.Price < 0 {
		return errorbank.BadRequest("price must be non-negative", errorbank.WithDetail("price", *input.Price))
	}
	return nil
}

func (s *Service) cacheKey(id string) string {
	return fmt.Sprintf("products:%s", id)
}

func (s *Service) getFromCache(ctx context.Context, id string) (*entity.Product, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, s.cacheKey(id))
	if err != nil {
		return nil, err
	}
	var product entity.Product
	if err := json.Unmarshal(bytes, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Service) storeInCache(ctx context.Context, product *entity.Product) {
	if s.cache == nil || product == nil {
		return
	}
	bytes, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(product.ID), bytes, s.cacheTTL); err != nil && s.logger != nil {
		s.logger.Warn("products cache write failed", zap.String("id", product.ID), zap.Error(err))
	}
}
