package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sculptstudio/atelier/internal/cache"
	"github.com/sculptstudio/atelier/internal/config"
	"github.com/sculptstudio/atelier/internal/entity"
	repo "github.com/sculptstudio/atelier/internal/repository/admin"
	"github.com/sculptstudio/atelier/pkg/errorbank"
)

const sessionKeyPrefix = "session:"

// Repository looks up admin accounts.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*entity.AdminUser, error)
}

// Service authenticates admins and manages bearer sessions. Sessions live
// in the cache store only, so a restart with the noop driver logs
// everyone out.
type Service struct {
	repo       Repository
	sessions   cache.Store
	sessionTTL time.Duration
	tokenBytes int
	logger     *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Sessions   cache.Store
	Config     config.Config
	Logger     *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:       p.Repository,
		sessions:   p.Sessions,
		sessionTTL: p.Config.Auth.SessionTTL,
		tokenBytes: p.Config.Auth.TokenBytes,
		logger:     p.Logger,
	}
}

// Identity is the session payload stored against a bearer token.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Login verifies the credentials and issues a session token. Unknown
// emails and wrong passwords report the same error.
func (s *Service) Login(ctx context.Context, email, password string) (string, *Identity, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", nil, errorbank.BadRequest("email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", nil, errorbank.Unauthorized("invalid credentials")
		}
		return "", nil, errorbank.Internal("failed to load admin user", errorbank.WithCause(err))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errorbank.Unauthorized("invalid credentials")
	}

	token, err := newToken(s.tokenBytes)
	if err != nil {
		return "", nil, errorbank.Internal("failed to issue session token", errorbank.WithCause(err))
	}

	identity := &Identity{UserID: user.ID, Email: user.Email}
	payload, err := json.Marshal(identity)
	if err != nil {
		return "", nil, errorbank.Internal("failed to encode session", errorbank.WithCause(err))
	}
	if err := s.sessions.Set(ctx, sessionKeyPrefix+token, payload, s.sessionTTL); err != nil {
		return "", nil, errorbank.Internal("failed to store session", errorbank.WithCause(err))
	}

	s.logger.Info("admin logged in", zap.String("email", user.Email))
	return token, identity, nil
}

// Session resolves a bearer token back to the identity it was issued for.
func (s *Service) Session(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, errorbank.Unauthorized("missing session token")
	}
	payload, err := s.sessions.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, errorbank.Unauthorized("session expired or unknown")
		}
		return nil, errorbank.Internal("failed to load session", errorbank.WithCause(err))
	}
	var identity Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return nil, errorbank.Internal("failed to decode session", errorbank.WithCause(err))
	}
	return &identity, nil
}

// Logout drops the session. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionKeyPrefix+token); err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		return errorbank.Internal("failed to drop session", errorbank.WithCause(err))
	}
	return nil
}

func newToken(size int) (string, error) {
	if size <= 0 {
		size = 32
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
