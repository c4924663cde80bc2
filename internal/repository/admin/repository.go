package admin

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/sculptstudio/atelier/internal/database"
	"github.com/sculptstudio/atelier/internal/entity"
)

var repoTracer = otel.Tracer("github.com/sculptstudio/atelier/repository/admin")

// ErrNotFound is returned when no admin user matches.
var ErrNotFound = errors.New("admin user not found")

// Repository reads operator accounts.
type Repository struct {
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{reader: conns.Reader}
}

// GetByEmail fetches an admin account by its unique email. The email itself
// is deliberately kept off the span attributes.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	ctx, span := repoTracer.Start(ctx, "AdminRepository.GetByEmail")
	defer span.End()

	user := new(entity.AdminUser)
	err := r.reader.NewSelect().Model(user).Where("email = ?", email).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return user, nil
}
