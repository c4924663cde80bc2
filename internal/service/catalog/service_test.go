package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sculptstudio/atelier/internal/cache"
	"github.com/sculptstudio/atelier/internal/entity"
	repo "github.com/sculptstudio/atelier/internal/repository/catalog"
	"github.com/sculptstudio/atelier/pkg/errorbank"
)

// Mock implementations

type mockRepository struct {
	CreateFunc  func(ctx context.Context, product *entity.Product) error
	ListFunc    func(ctx context.Context) ([]entity.Product, error)
	GetByIDFunc func(ctx context.Context, id string) (*entity.Product, error)
	UpdateFunc  func(ctx context.Context, product *entity.Product) (*entity.Product, error)
	DeleteFunc  func(ctx context.Context, id string) error

	createCalls int
	getCalls    int
}

func (m *mockRepository) Create(ctx context.Context, product *entity.Product) error {
	m.createCalls++
	return m.CreateFunc(ctx, product)
}

func (m *mockRepository) List(ctx context.Context) ([]entity.Product, error) {
	return m.ListFunc(ctx)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	m.getCalls++
	return m.GetByIDFunc(ctx, id)
}

func (m *mockRepository) Update(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	return m.UpdateFunc(ctx, product)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

// memoryStore is an in-process cache.Store for tests.
type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (m *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, cache.ErrCacheMiss
}

func (m *memoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func newTestService(r Repository, store cache.Store) *Service {
	return &Service{repo: r, cache: store, cacheTTL: time.Minute, logger: zap.NewNop()}
}

func validInput() ProductInput {
	return ProductInput{
		Title:       "Lord Ganesh",
		Description: "Test",
		Category:    "Hindu Gods",
		Image:       "https://example/img.png",
	}
}

func TestCreate_RequiredFieldsBlockWrite(t *testing.T) {
	repoMock := &mockRepository{
		CreateFunc: func(ctx context.Context, product *entity.Product) error { return nil },
	}
	svc := newTestService(repoMock, newMemoryStore())

	for _, mutate := range []func(*ProductInput){
		func(in *ProductInput) { in.Title = "" },
		func(in *ProductInput) { in.Category = " " },
		func(in *ProductInput) { in.Description = "" },
		func(in *ProductInput) { in.Image = "" },
	} {
		input := validInput()
		mutate(&input)

		_, err := svc.Create(context.Background(), input)

		assert.Error(t, err)
		assert.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
	}
	assert.Equal(t, 0, repoMock.createCalls)
}

func TestCreate_NegativePriceRejected(t *testing.T) {
	repoMock := &mockRepository{
		CreateFunc: func(ctx context.Context, product *entity.Product) error { return nil },
	}
	svc := newTestService(repoMock, newMemoryStore())

	price := -50.0
	input := validInput()
	input.Price = &price

	_, err := svc.Create(context.Background(), input)

	assert.Error(t, err)
	assert.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
	assert.Equal(t, 0, repoMock.createCalls)
}

func TestCreate_NilPriceAllowed(t *testing.T) {
	var stored *entity.Product
	repoMock := &mockRepository{
		CreateFunc: func(ctx context.Context, product *entity.Product) error {
			stored = product
			return nil
		},
	}
	svc := newTestService(repoMock, newMemoryStore())

	product, err := svc.Create(context.Background(), validInput())

	assert.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Nil(t, stored.Price)
	assert.False(t, product.CreatedAt.IsZero())
}

func TestCreate_RepositoryFailureSurfacesInternal(t *testing.T) {
	repoMock := &mockRepository{
		CreateFunc: func(ctx context.Context, product *entity.Product) error {
			return errors.New("insert rejected")
		},
	}
	svc := newTestService(repoMock, newMemoryStore())

	_, err := svc.Create(context.Background(), validInput())

	assert.Error(t, err)
	assert.Equal(t, errorbank.KindInternal, errorbank.From(err).Kind())
}

func TestGet_CacheHitSkipsRepository(t *testing.T) {
	repoMock := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*entity.Product, error) {
			return &entity.Product{ID: id, Title: "Buddha"}, nil
		},
	}
	svc := newTestService(repoMock, newMemoryStore())

	first, err := svc.Get(context.Background(), "p-1")
	assert.NoError(t, err)

	second, err := svc.Get(context.Background(), "p-1")
	assert.NoError(t, err)

	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, 1, repoMock.getCalls)
}

func TestGet_NotFound(t *testing.T) {
	repoMock := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*entity.Product, error) {
			return nil, repo.ErrNotFound
		},
	}
	svc := newTestService(repoMock, newMemoryStore())

	_, err := svc.Get(context.Background(), "missing")

	assert.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}

func TestUpdate_SetsPrice(t *testing.T) {
	var written *entity.Product
	repoMock := &mockRepository{
		UpdateFunc: func(ctx context.Context, product *entity.Product) (*entity.Product, error) {
			written = product
			stored := *product
			stored.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
			return &stored, nil
		},
	}
	svc := newTestService(repoMock, newMemoryStore())

	price := 1500.0
	input := validInput()
	input.Price = &price

	product, err := svc.Update(context.Background(), "p-1", input)

	assert.NoError(t, err)
	assert.Equal(t, "p-1", written.ID)
	assert.Equal(t, 1500.0, *product.Price)
}

func TestUpdate_KeepsCreationTimestamp(t *testing.T) {
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repoMock := &mockRepository{
		UpdateFunc: func(ctx context.Context, product *entity.Product) (*entity.Product, error) {
			stored := *product
			stored.CreatedAt = createdAt
			return &stored, nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*entity.Product, error) {
			t.Fatal("expected the updated row to be served from cache")
			return nil, nil
		},
	}
	svc := newTestService(repoMock, newMemoryStore())

	updated, err := svc.Update(context.Background(), "p-1", validInput())
	assert.NoError(t, err)
	assert.Equal(t, createdAt, updated.CreatedAt)

	got, err := svc.Get(context.Background(), "p-1")
	assert.NoError(t, err)
	assert.Equal(t, createdAt, got.CreatedAt)
	assert.Equal(t, 0, repoMock.getCalls)
}

func TestUpdate_NotFound(t *testing.T) {
	repoMock := &mockRepository{
		UpdateFunc: func(ctx context.Context, product *entity.Product) (*entity.Product, error) {
			return nil, repo.ErrNotFound
		},
	}
	svc := newTestService(repoMock, newMemoryStore())

	_, err := svc.Update(context.Background(), "missing", validInput())

	assert.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}

func TestDelete_EvictsCache(t *testing.T) {
	store := newMemoryStore()
	repoMock := &mockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*entity.Product, error) {
			return &entity.Product{ID: id, Title: "Ganesha"}, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error { return nil },
	}
	svc := newTestService(repoMock, store)

	_, err := svc.Get(context.Background(), "p-1")
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(context.Background(), "p-1"))

	_, err = store.Get(context.Background(), "products:p-1")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestDelete_NotFound(t *testing.T) {
	repoMock := &mockRepository{
		DeleteFunc: func(ctx context.Context, id string) error { return repo.ErrNotFound },
	}
	svc := newTestService(repoMock, newMemoryStore())

	err := svc.Delete(context.Background(), "missing")

	assert.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}

func TestList_EmptyCatalogIsNotAnError(t *testing.T) {
	repoMock := &mockRepository{
		ListFunc: func(ctx context.Context) ([]entity.Product, error) {
			return []entity.Product{}, nil
		},
	}
	svc := newTestService(repoMock, newMemoryStore())

	products, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}
