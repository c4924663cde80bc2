package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sculptstudio/atelier/internal/cache"
	"github.com/sculptstudio/atelier/internal/entity"
	repo "github.com/sculptstudio/atelier/internal/repository/admin"
	"github.com/sculptstudio/atelier/pkg/errorbank"
)

// Mock implementations

type mockRepository struct {
	GetByEmailFunc func(ctx context.Context, email string) (*entity.AdminUser, error)
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	return m.GetByEmailFunc(ctx, email)
}

type memoryStore struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{items: map[string][]byte{}}
}

func (s *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.items[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return value, nil
}

func (s *memoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; !ok {
		return cache.ErrCacheMiss
	}
	delete(s.items, key)
	return nil
}

func adminFixture(t *testing.T, password string) *entity.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &entity.AdminUser{
		ID:           "admin-1",
		Email:        "admin@sculptstudio.com",
		PasswordHash: string(hash),
	}
}

func newTestService(r Repository, store cache.Store) *Service {
	return &Service{repo: r, sessions: store, sessionTTL: time.Hour, logger: zap.NewNop()}
}

func TestLogin_IssuesResolvableSession(t *testing.T) {
	admin := adminFixture(t, "carving-chisel")
	repoMock := &mockRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*entity.AdminUser, error) {
			assert.Equal(t, "admin@sculptstudio.com", email)
			return admin, nil
		},
	}
	svc := newTestService(repoMock, newMemoryStore())

	token, identity, err := svc.Login(context.Background(), "Admin@SculptStudio.com", "carving-chisel")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin@sculptstudio.com", identity.Email)

	resolved, err := svc.Session(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, "admin-1", resolved.UserID)
}

func TestLogin_TokenLengthFollowsConfig(t *testing.T) {
	admin := adminFixture(t, "carving-chisel")
	repoMock := &mockRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*entity.AdminUser, error) {
			return admin, nil
		},
	}
	svc := newTestService(repoMock, newMemoryStore())
	svc.tokenBytes = 24

	token, _, err := svc.Login(context.Background(), "admin@sculptstudio.com", "carving-chisel")

	assert.NoError(t, err)
	assert.Len(t, token, 48)
}

func TestLogin_WrongPassword(t *testing.T) {
	admin := adminFixture(t, "carving-chisel")
	repoMock := &mockRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*entity.AdminUser, error) {
			return admin, nil
		},
	}
	svc := newTestService(repoMock, newMemoryStore())

	_, _, err := svc.Login(context.Background(), "admin@sculptstudio.com", "guess")

	assert.Error(t, err)
	assert.Equal(t, errorbank.KindUnauthorized, errorbank.From(err).Kind())
}

func TestLogin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	repoMock := &mockRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*entity.AdminUser, error) {
			return nil, repo.ErrNotFound
		},
	}
	svc := newTestService(repoMock, newMemoryStore())

	_, _, err := svc.Login(context.Background(), "nobody@sculptstudio.com", "carving-chisel")

	assert.Error(t, err)
	assert.Equal(t, errorbank.KindUnauthorized, errorbank.From(err).Kind())
}

func TestLogin_MissingCredentials(t *testing.T) {
	svc := newTestService(&mockRepository{}, newMemoryStore())

	_, _, err := svc.Login(context.Background(), "", "")

	assert.Error(t, err)
	assert.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
}

func TestSession_UnknownToken(t *testing.T) {
	svc := newTestService(&mockRepository{}, newMemoryStore())

	_, err := svc.Session(context.Background(), "deadbeef")

	assert.Error(t, err)
	assert.Equal(t, errorbank.KindUnauthorized, errorbank.From(err).Kind())
}

func TestLogout_DropsSession(t *testing.T) {
	admin := adminFixture(t, "carving-chisel")
	repoMock := &mockRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*entity.AdminUser, error) {
			return admin, nil
		},
	}
	svc := newTestService(repoMock, newMemoryStore())

	token, _, err := svc.Login(context.Background(), "admin@sculptstudio.com", "carving-chisel")
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(context.Background(), token))

	_, err = svc.Session(context.Background(), token)
	assert.Equal(t, errorbank.KindUnauthorized, errorbank.From(err).Kind())
}

func TestLogout_UnknownTokenIsNoop(t *testing.T) {
	svc := newTestService(&mockRepository{}, newMemoryStore())

	assert.NoError(t, svc.Logout(context.Background(), "deadbeef"))
	assert.NoError(t, svc.Logout(context.Background(), ""))
}
