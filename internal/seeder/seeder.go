package seeder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sculptstudio/atelier/internal/config"
	"github.com/sculptstudio/atelier/internal/database"
	"github.com/sculptstudio/atelier/internal/entity"
)

// Module provides the seeder to Fx.
var Module = fx.Provide(New)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db     *bun.DB
	cfg    config.Config
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, cfg config.Config, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, cfg: cfg, logger: logger}
}

// Products seeds the default catalog entries if they are missing.
// Fixed ids keep reruns idempotent.
func (s *Seeder) Products(ctx context.Context) error {
	now := time.Now().UTC()
	samples := []entity.Product{
		{
			ID:          "a39274be-0fe6-4f1e-8b60-2c17500ff201",
			Title:       "Hindu Gods",
			Description: "Exquisite sculptures of Hindu deities crafted with devotion and attention to detail.",
			Category:    "Hindu Gods",
			Image:       "https://cdn.sculptstudio.com/catalog/hindu-gods.png",
			CreatedAt:   now,
		},
		{
			ID:          "b81f02da-55c4-4f0e-9a3d-6f2a9f3d92a2",
			Title:       "Buddha Statues",
			Description: "Serene Buddha sculptures embodying peace and enlightenment, perfect for meditation spaces.",
			Category:    "Buddhas",
			Image:       "https://cdn.sculptstudio.com/catalog/buddha.png",
			CreatedAt:   now,
		},
		{
			ID:          "c22b9cf3-91ab-4a6d-8f07-0d41d31f0ea3",
			Title:       "Stone Temples",
			Description: "Miniature stone temples inspired by ancient Indian architecture for your sacred space.",
			Category:    "Stone Temples",
			Image:       "https://cdn.sculptstudio.com/catalog/stone-temple.png",
			CreatedAt:   now,
		},
		{
			ID:          "d5c11c5e-3b65-4d38-9f53-79c6a08c10a4",
			Title:       "Ganesha Idols",
			Description: "Lord Ganesha sculptures to bring prosperity and remove obstacles from your life.",
			Category:    "Hindu Gods",
			Image:       "https://cdn.sculptstudio.com/catalog/ganesha.png",
			CreatedAt:   now,
		},
	}

	for _, sample := range samples {
		product := sample
		_, err := s.db.NewInsert().Model(&product).
			On("CONFLICT (id) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded products", zap.Int("count", len(samples)))
	}
	return nil
}

// AdminUser seeds the operator account from AUTH_ADMIN_EMAIL/PASSWORD.
// Skipped when no password is configured.
func (s *Seeder) AdminUser(ctx context.Context) error {
	if s.cfg.Auth.AdminPassword == "" {
		if s.logger != nil {
			s.logger.Info("admin password not configured; skipping admin seed")
		}
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Auth.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.AdminUser{
		ID:           uuid.NewString(),
		Email:        s.cfg.Auth.AdminEmail,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	_, err = s.db.NewInsert().Model(&admin).
		On("CONFLICT (email) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("seeded admin user", zap.String("email", admin.Email))
	}
	return nil
}
