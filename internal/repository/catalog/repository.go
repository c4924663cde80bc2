package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sculptstudio/atelier/internal/database"
	"github.com/sculptstudio/atelier/internal/entity"
)

var repoTracer = otel.Tracer("github.com/sculptstudio/atelier/repository/catalog")

// ErrNotFound is returned when a product is missing.
var ErrNotFound = errors.New("product not found")

// Repository encapsulates read/write access for catalog products.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// Create persists a new product using the write connection.
func (r *Repository) Create(ctx context.Context, product *entity.Product) error {
	if product == nil {
		return errors.New("nil product")
	}
	ctx, span := repoTracer.Start(ctx, "CatalogRepository.Create", trace.WithAttributes(attribute.String("product.title", product.Title)))
	defer span.End()

	_, err := r.writer.NewInsert().Model(product).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// List fetches all products newest-first. An empty catalog yields an empty
// slice, not an error.
func (r *Repository) List(ctx context.Context) ([]entity.Product, error) {
	ctx, span := repoTracer.Start(ctx, "CatalogRepository.List")
	defer span.End()

	products := make([]entity.Product, 0)
	err := r.reader.NewSelect().Model(&products).Order("created_at DESC").Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return products, nil
}

// GetByID fetches a product by primary key using the read replica when available.
func (r *Repository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	ctx, span := repoTracer.Start(ctx, "CatalogRepository.GetByID", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	product := new(entity.Product)
	err := r.reader.NewSelect().Model(product).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return product, nil
}

// Update rewrites the editable fields of one product and returns the
// stored row, created_at included. Missing ids surface as ErrNotFound.
func (r *Repository) Update(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if product == nil {
		return nil, errors.New("nil product")
	}
	ctx, span := repoTracer.Start(ctx, "CatalogRepository.Update", trace.WithAttributes(attribute.String("product.id", product.ID)))
	defer span.End()

	res, err := r.writer.NewUpdate().
		Model(product).
		Column("title", "description", "category", "image", "price").
		Where("id = ?", product.ID).
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return nil, err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}

	stored := new(entity.Product)
	if err := r.writer.NewSelect().Model(stored).Where("id = ?", product.ID).Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return stored, nil
}

// Delete removes a product by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	ctx, span := repoTracer.Start(ctx, "CatalogRepository.Delete", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	res, err := r.writer.NewDelete().
		Model((*entity.Product)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		span.SetStatus(codes.Error, "not found")
		return ErrNotFound
	}
	return nil
}

// CountByCategory returns how many products each category holds.
func (r *Repository) CountByCategory(ctx context.Context) (map[string]int, error) {
	ctx, span := repoTracer.Start(ctx, "CatalogRepository.CountByCategory")
	defer span.End()

	var rows []struct {
		Category string `bun:"category"`
		Count    int    `bun:"count"`
	}

	err := r.reader.NewSelect().
		Model((*entity.Product)(nil)).
		ColumnExpr("category").
		ColumnExpr("COUNT(*) AS count").
		Group("category").
		Scan(ctx, &rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}
	return counts, nil
}
