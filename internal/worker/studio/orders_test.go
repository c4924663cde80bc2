package studio

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sculptstudio/atelier/internal/config"
	"github.com/sculptstudio/atelier/internal/messaging"
	bookingsvc "github.com/sculptstudio/atelier/internal/service/booking"
	whatsappsvc "github.com/sculptstudio/atelier/internal/service/whatsapp"
)

func newHandler(t *testing.T) func(context.Context, messaging.Message) error {
	t.Helper()
	var cfg config.Config
	cfg.Messaging.Kafka.Topic = "studio.orders"
	registration := NewStudioEventsHandler(zap.NewNop(), cfg)
	assert.Equal(t, "studio.orders", registration.Topic)
	return registration.Handler
}

func TestHandler_OrderRequestCreated(t *testing.T) {
	handler := newHandler(t)

	payload, err := json.Marshal(bookingsvc.OrderRequestCreatedEvent{
		Kind:        bookingsvc.EventKindOrderRequestCreated,
		ID:          "r-1",
		Name:        "Anita Rao",
		ServiceType: "custom",
	})
	assert.NoError(t, err)

	err = handler(context.Background(), messaging.Message{Topic: "studio.orders", Value: payload})
	assert.NoError(t, err)
}

func TestHandler_WhatsAppOrderCreated(t *testing.T) {
	handler := newHandler(t)

	payload, err := json.Marshal(whatsappsvc.WhatsAppOrderCreatedEvent{
		Kind:         whatsappsvc.EventKindWhatsAppOrderCreated,
		ID:           "o-1",
		ProductTitle: "Ganesha Idol",
	})
	assert.NoError(t, err)

	err = handler(context.Background(), messaging.Message{Topic: "studio.orders", Value: payload})
	assert.NoError(t, err)
}

func TestHandler_UnknownKindIsNotAnError(t *testing.T) {
	handler := newHandler(t)

	err := handler(context.Background(), messaging.Message{Topic: "studio.orders", Value: []byte(`{"kind":"mystery"}`)})
	assert.NoError(t, err)
}

func TestHandler_MalformedPayload(t *testing.T) {
	handler := newHandler(t)

	err := handler(context.Background(), messaging.Message{Topic: "studio.orders", Value: []byte("{")})
	assert.Error(t, err)
}
