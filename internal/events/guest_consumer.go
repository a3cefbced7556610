package events

import (
	"context"
	"strings"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Selam-Hotels/service-reservation/internal/domain/guest"
	"github.com/Selam-Hotels/service-reservation/pkg/kafka"
)

// GuestEventConsumer listens to guest directory events and keeps the local
// guest read model current.
type GuestEventConsumer struct {
	consumer *kafka.Consumer
	profiles guest.ProfileRepository
	logger   *zap.Logger
}

// NewGuestEventConsumer creates a consumer for guest directory events.
func NewGuestEventConsumer(brokers []string, groupID string, profiles guest.ProfileRepository, logger *zap.Logger) *GuestEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicGuestEvents, logger)
	return &GuestEventConsumer{
		consumer: consumer,
		profiles: profiles,
		logger:   logger,
	}
}

// Start begins consuming guest events. It blocks until ctx is cancelled.
func (c *GuestEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// handleMessage routes incoming Kafka messages to the appropriate handler.
func (c *GuestEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from guest topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return err
	}

	switch {
	case strings.EqualFold(cloudEvent.Type, GuestRegistered):
		return c.handleGuestRegistered(ctx, cloudEvent)

	case strings.EqualFold(cloudEvent.Type, GuestRemoved):
		return c.handleGuestRemoved(ctx, cloudEvent)

	default:
		c.logger.Debug("ignoring unhandled guest event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *GuestEventConsumer) handleGuestRegistered(ctx context.Context, ce kafka.CloudEvent) error {
	var event GuestRegisteredEvent
	if err := ce.ParseData(&event); err != nil {
		c.logger.Error("failed to parse GuestRegisteredEvent data", zap.Error(err))
		return err
	}

	c.logger.Info("guest registered",
		zap.String("guest_id", event.GuestID.String()),
	)
	return c.profiles.Upsert(ctx, guest.Profile{
		ID:       event.GuestID,
		FullName: event.FullName,
		Phone:    event.Phone,
	})
}

func (c *GuestEventConsumer) handleGuestRemoved(ctx context.Context, ce kafka.CloudEvent) error {
	var event GuestRemovedEvent
	if err := ce.ParseData(&event); err != nil {
		c.logger.Error("failed to parse GuestRemovedEvent data", zap.Error(err))
		return err
	}

	c.logger.Info("guest removed",
		zap.String("guest_id", event.GuestID.String()),
	)
	return c.profiles.Remove(ctx, event.GuestID)
}

// Close closes the underlying Kafka consumer.
func (c *GuestEventConsumer) Close() error {
	return c.consumer.Close()
}
