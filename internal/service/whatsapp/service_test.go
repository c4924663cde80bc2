package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sculptstudio/atelier/internal/entity"
	"github.com/sculptstudio/atelier/internal/messaging"
	repo "github.com/sculptstudio/atelier/internal/repository/whatsapp"
	"github.com/sculptstudio/atelier/pkg/errorbank"
)

// Mock implementations

type mockRepository struct {
	CreateFunc       func(ctx context.Context, order *entity.WhatsAppOrder) error
	ListFunc         func(ctx context.Context) ([]entity.WhatsAppOrder, error)
	UpdateStatusFunc func(ctx context.Context, id string, status entity.OrderStatus) (*entity.WhatsAppOrder, error)

	createCalls int
}

func (m *mockRepository) Create(ctx context.Context, order *entity.WhatsAppOrder) error {
	m.createCalls++
	return m.CreateFunc(ctx, order)
}

func (m *mockRepository) List(ctx context.Context) ([]entity.WhatsAppOrder, error) {
	return m.ListFunc(ctx)
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.WhatsAppOrder, error) {
	return m.UpdateStatusFunc(ctx, id, status)
}

type mockProducts struct {
	GetFunc func(ctx context.Context, id string) (*entity.Product, error)
}

func (m *mockProducts) Get(ctx context.Context, id string) (*entity.Product, error) {
	return m.GetFunc(ctx, id)
}

type mockPublisher struct {
	published [][]byte
}

func (m *mockPublisher) Publish(ctx context.Context, key, value []byte) error {
	m.published = append(m.published, value)
	return nil
}

func (m *mockPublisher) Consume(ctx context.Context, handler messaging.Handler) error {
	return nil
}

func (m *mockPublisher) Topic() string { return "studio.orders" }

func ganeshaIdol() *entity.Product {
	return &entity.Product{
		ID:          "p-1",
		Title:       "Ganesha Idol",
		Description: "Hand carved granite Ganesha, 2 ft",
		Category:    "Ganesha Idols",
	}
}

func newTestService(r Repository, p ProductReader) *Service {
	return &Service{repo: r, products: p, phone: "919876543210", logger: zap.NewNop()}
}

func TestPlaceOrder_MissingNameBlocksWrite(t *testing.T) {
	repoMock := &mockRepository{
		CreateFunc: func(ctx context.Context, order *entity.WhatsAppOrder) error { return nil },
	}
	products := &mockProducts{
		GetFunc: func(ctx context.Context, id string) (*entity.Product, error) { return ganeshaIdol(), nil },
	}
	svc := newTestService(repoMock, products)

	_, _, err := svc.PlaceOrder(context.Background(), "p-1", OrderInput{CustomerName: "  "})

	assert.Error(t, err)
	assert.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
	assert.Equal(t, 0, repoMock.createCalls)
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	repoMock := &mockRepository{
		CreateFunc: func(ctx context.Context, order *entity.WhatsAppOrder) error { return nil },
	}
	products := &mockProducts{
		GetFunc: func(ctx context.Context, id string) (*entity.Product, error) {
			return nil, errorbank.NotFound("product not found")
		},
	}
	svc := newTestService(repoMock, products)

	_, _, err := svc.PlaceOrder(context.Background(), "missing", OrderInput{CustomerName: "Anita Rao"})

	assert.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
	assert.Equal(t, 0, repoMock.createCalls)
}

func TestPlaceOrder_RecordsOrderBeforeRedirect(t *testing.T) {
	var recorded *entity.WhatsAppOrder
	repoMock := &mockRepository{
		CreateFunc: func(ctx context.Context, order *entity.WhatsAppOrder) error {
			recorded = order
			return nil
		},
	}
	products := &mockProducts{
		GetFunc: func(ctx context.Context, id string) (*entity.Product, error) { return ganeshaIdol(), nil },
	}
	svc := newTestService(repoMock, products)

	order, link, err := svc.PlaceOrder(context.Background(), "p-1", OrderInput{
		CustomerName:  "Anita Rao",
		CustomerEmail: "anita@example.com",
		CustomerPhone: "9876543210",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, repoMock.createCalls)
	assert.NotNil(t, recorded)
	assert.Equal(t, entity.OrderStatusNew, recorded.Status)
	assert.Equal(t, "p-1", recorded.ProductID)
	assert.NotEmpty(t, order.ID)
	assert.NotEmpty(t, link)
}

func TestPlaceOrder_LinkEncodesMessage(t *testing.T) {
	repoMock := &mockRepository{
		CreateFunc: func(ctx context.Context, order *entity.WhatsAppOrder) error { return nil },
	}
	products := &mockProducts{
		GetFunc: func(ctx context.Context, id string) (*entity.Product, error) { return ganeshaIdol(), nil },
	}
	svc := newTestService(repoMock, products)

	_, link, err := svc.PlaceOrder(context.Background(), "p-1", OrderInput{CustomerName: "Anita Rao"})

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="), link)

	parsed, err := url.Parse(link)
	assert.NoError(t, err)
	text := parsed.Query().Get("text")
	assert.Contains(t, text, "Ganesha Idol")
	assert.Contains(t, text, "Hand carved granite Ganesha, 2 ft")
}

func TestPlaceOrder_RepositoryFailure(t *testing.T) {
	repoMock := &mockRepository{
		CreateFunc: func(ctx context.Context, order *entity.WhatsAppOrder) error {
			return errors.New("connection reset")
		},
	}
	products := &mockProducts{
		GetFunc: func(ctx context.Context, id string) (*entity.Product, error) { return ganeshaIdol(), nil },
	}
	svc := newTestService(repoMock, products)

	_, _, err := svc.PlaceOrder(context.Background(), "p-1", OrderInput{CustomerName: "Anita Rao"})

	assert.Error(t, err)
	assert.Equal(t, errorbank.KindInternal, errorbank.From(err).Kind())
}

func TestPlaceOrder_PublishesCreatedEvent(t *testing.T) {
	repoMock := &mockRepository{
		CreateFunc: func(ctx context.Context, order *entity.WhatsAppOrder) error { return nil },
	}
	products := &mockProducts{
		GetFunc: func(ctx context.Context, id string) (*entity.Product, error) { return ganeshaIdol(), nil },
	}
	pub := &mockPublisher{}
	svc := newTestService(repoMock, products)
	svc.publisher = pub
	svc.messaging = messagingConfig{enabled: true, topic: "studio.orders"}

	order, _, err := svc.PlaceOrder(context.Background(), "p-1", OrderInput{CustomerName: "Anita Rao"})

	assert.NoError(t, err)
	assert.Len(t, pub.published, 1)

	var event WhatsAppOrderCreatedEvent
	assert.NoError(t, json.Unmarshal(pub.published[0], &event))
	assert.Equal(t, EventKindWhatsAppOrderCreated, event.Kind)
	assert.Equal(t, order.ID, event.ID)
	assert.Equal(t, "Ganesha Idol", event.ProductTitle)
}

func TestList_RepositoryFailure(t *testing.T) {
	repoMock := &mockRepository{
		ListFunc: func(ctx context.Context) ([]entity.WhatsAppOrder, error) {
			return nil, errors.New("timeout")
		},
	}
	svc := newTestService(repoMock, nil)

	_, err := svc.List(context.Background())

	assert.Error(t, err)
	assert.Equal(t, errorbank.KindInternal, errorbank.From(err).Kind())
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := newTestService(&mockRepository{}, nil)

	_, err := svc.UpdateStatus(context.Background(), "o-1", "shipped")

	assert.Error(t, err)
	assert.Equal(t, errorbank.KindBadRequest, errorbank.From(err).Kind())
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repoMock := &mockRepository{
		UpdateStatusFunc: func(ctx context.Context, id string, status entity.OrderStatus) (*entity.WhatsAppOrder, error) {
			return nil, repo.ErrNotFound
		},
	}
	svc := newTestService(repoMock, nil)

	_, err := svc.UpdateStatus(context.Background(), "missing", "processing")

	assert.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}

func TestUpdateStatus_MovesOrderForward(t *testing.T) {
	repoMock := &mockRepository{
		UpdateStatusFunc: func(ctx context.Context, id string, status entity.OrderStatus) (*entity.WhatsAppOrder, error) {
			return &entity.WhatsAppOrder{ID: id, Status: status}, nil
		},
	}
	svc := newTestService(repoMock, nil)

	order, err := svc.UpdateStatus(context.Background(), "o-1", "completed")

	assert.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
}
