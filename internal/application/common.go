package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Selam-Hotels/service-reservation/internal/events"
	"github.com/Selam-Hotels/service-reservation/pkg/domain"
	"github.com/Selam-Hotels/service-reservation/pkg/kafka"
)

// DateLayout is the wire format for stay dates.
const DateLayout = "2006-01-02"

// parseDate parses a wire date into a midnight-UTC time.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, domain.NewValidationError("%s must be a date in YYYY-MM-DD format", field)
	}
	return t, nil
}

// EventPublisher is the slice of the Kafka producer the services need.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// publishEvent wraps data in a CloudEvent and publishes it. Events are
// notifications about committed state; failures are logged, never returned,
// so a flaky broker cannot fail an already-committed operation.
func publishEvent(ctx context.Context, producer EventPublisher, logger *zap.Logger, eventType string, data any) {
	if producer == nil {
		return
	}
	ce, err := kafka.NewCloudEvent(events.Source, eventType, data)
	if err != nil {
		logger.Error("failed to create cloud event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := producer.PublishEvent(ctx, events.TopicReservationEvents, ce); err != nil {
		logger.Error("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}
