package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sculptstudio/atelier/internal/database"
	"github.com/sculptstudio/atelier/internal/entity"
)

var repoTracer = otel.Tracer("github.com/sculptstudio/atelier/repository/booking")

// ErrNotFound is returned when an order request is missing.
var ErrNotFound = errors.New("order request not found")

// Repository encapsulates read/write access for order requests.
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

// Create persists a new order request using the write connection.
func (r *Repository) Create(ctx context.Context, request *entity.OrderRequest) error {
	if request == nil {
		return errors.New("nil order request")
	}
	ctx, span := repoTracer.Start(ctx, "BookingRepository.Create", trace.WithAttributes(attribute.String("request.id", request.ID)))
	defer span.End()

	_, err := r.writer.NewInsert().Model(request).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// List fetches order requests newest-first. A non-empty search term narrows
// the result to rows whose name, email, service type, or statue name
// contains the term, case-insensitively.
func (r *Repository) List(ctx context.Context, search string) ([]entity.OrderRequest, error) {
	ctx, span := repoTracer.Start(ctx, "BookingRepository.List", trace.WithAttributes(attribute.String("request.search", search)))
	defer span.End()

	requests := make([]entity.OrderRequest, 0)
	q := r.reader.NewSelect().Model(&requests).Order("created_at DESC")

	if term := strings.TrimSpace(search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.WhereGroup(" AND ", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.
				WhereOr("LOWER(name) LIKE ?", like).
				WhereOr("LOWER(email) LIKE ?", like).
				WhereOr("LOWER(service_type) LIKE ?", like).
				WhereOr("LOWER(statue_name) LIKE ?", like)
		})
	}

	if err := q.Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return requests, nil
}

// UpdateStatus sets the workflow state of one request and returns the
// updated row. Missing ids surface as ErrNotFound.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status entity.RequestStatus) (*entity.OrderRequest, error) {
	ctx, span := repoTracer.Start(ctx, "BookingRepository.UpdateStatus", trace.WithAttributes(
		attribute.String("request.id", id),
		attribute.String("request.status", string(status)),
	))
	defer span.End()

	res, err := r.writer.NewUpdate().
		Model((*entity.OrderRequest)(nil)).
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

	request := new(entity.OrderRequest)
	if err := r.writer.NewSelect().Model(request).Where("id = ?", id).Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return request, nil
}

// CountByStatus returns how many requests sit in each workflow state.
func (r *Repository) CountByStatus(ctx context.Context) (map[entity.RequestStatus]int, error) {
	ctx, span := repoTracer.Start(ctx, "BookingRepository.CountByStatus")
	defer span.End()

	var rows []struct {
		Status entity.RequestStatus `bun:"status"`
		Count  int                  `bun:"count"`
	}

	err := r.reader.NewSelect().
		Model((*entity.OrderRequest)(nil)).
		ColumnExpr("status").
		ColumnExpr("COUNT(*) AS count").
		Group("status").
		Scan(ctx, &rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}

	counts := make(map[entity.RequestStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
