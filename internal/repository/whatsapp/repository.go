package whatsapp

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sculptstudio/atelier/internal/database"
	"github.com/sculptstudio/atelier/internal/entity"
)

var repoTracer = otel.Tracer("github.com/sculptstudio/atelier/repository/whatsapp")

// ErrNotFound is returned when a WhatsApp order is missing.
var ErrNotFound = errors.New("whatsapp order not found")

// Repository encapsulates read/write access for WhatsApp orders.
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

// Create persists a new WhatsApp order using the write connection.
func (r *Repository) Create(ctx context.Context, order *entity.WhatsAppOrder) error {
	if order == nil {
		return errors.New("nil whatsapp order")
	}
	ctx, span := repoTracer.Start(ctx, "WhatsAppRepository.Create", trace.WithAttributes(attribute.String("order.id", order.ID)))
	defer span.End()

	_, err := r.writer.NewInsert().Model(order).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// List fetches all WhatsApp orders newest-first.
func (r *Repository) List(ctx context.Context) ([]entity.WhatsAppOrder, error) {
	ctx, span := repoTracer.Start(ctx, "WhatsAppRepository.List")
	defer span.End()

	orders := make([]entity.WhatsAppOrder, 0)
	err := r.reader.NewSelect().Model(&orders).Order("created_at DESC").Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return orders, nil
}

// UpdateStatus sets the workflow state of one order and returns the updated
// row. Missing ids surface as ErrNotFound.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.WhatsAppOrder, error) {
	ctx, span := repoTracer.Start(ctx, "WhatsAppRepository.UpdateStatus", trace.WithAttributes(
		attribute.String("order.id", id),
		attribute.String("order.status", string(status)),
	))
	defer span.End()

	res, err := r.writer.NewUpdate().
		Model((*entity.WhatsAppOrder)(nil)).
		Set("status = ?", status).
		Where("id = ?", id).
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

	order := new(entity.WhatsAppOrder)
	if err := r.writer.NewSelect().Model(order).Where("id = ?", id).Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return order, nil
}

// CountByStatus returns how many orders sit in each workflow state.
func (r *Repository) CountByStatus(ctx context.Context) (map[entity.OrderStatus]int, error) {
	ctx, span := repoTracer.Start(ctx, "WhatsAppRepository.CountByStatus")
	defer span.End()

	var rows []struct {
		Status entity.OrderStatus `bun:"status"`
		Count  int                `bun:"count"`
	}

	err := r.reader.NewSelect().
		Model((*entity.WhatsAppOrder)(nil)).
		ColumnExpr("status").
		ColumnExpr("COUNT(*) AS count").
		Group("status").
		Scan(ctx, &rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}

	counts := make(map[entity.OrderStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
