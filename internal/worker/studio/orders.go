package studio

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sculptstudio/atelier/internal/config"
	"github.com/sculptstudio/atelier/internal/messaging"
	bookingsvc "github.com/sculptstudio/atelier/internal/service/booking"
	whatsappsvc "github.com/sculptstudio/atelier/internal/service/whatsapp"
	"github.com/sculptstudio/atelier/internal/worker"
)

var workerTracer = otel.Tracer("github.com/sculptstudio/atelier/worker/studio")

// Module registers studio event worker handlers.
var Module = fx.Module("worker_studio",
	fx.Provide(
		fx.Annotate(
			NewStudioEventsHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// envelope peeks at the kind tag shared by every studio event.
type envelope struct {
	Kind string `json:"kind"`
}

// NewStudioEventsHandler sets up a worker handler that processes order
// request and WhatsApp order events published on the studio topic.
func NewStudioEventsHandler(logger *zap.Logger, cfg config.Config) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		ctx, span := workerTracer.Start(ctx, "worker.studio.process", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var env envelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			logger.Error("failed to decode studio event", zap.Error(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}
		span.SetAttributes(attribute.String("event.kind", env.Kind))

		switch env.Kind {
		case bookingsvc.EventKindOrderRequestCreated:
			var event bookingsvc.OrderRequestCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "decode error")
				return err
			}
			logger.Info("order request received",
				zap.String("id", event.ID),
				zap.String("name", event.Name),
				zap.String("service_type", event.ServiceType),
			)
		case whatsappsvc.EventKindWhatsAppOrderCreated:
			var event whatsappsvc.WhatsAppOrderCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "decode error")
				return err
			}
			logger.Info("whatsapp order received",
				zap.String("id", event.ID),
				zap.String("product", event.ProductTitle),
			)
		default:
			logger.Warn("unknown studio event kind", zap.String("kind", env.Kind))
		}

		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
