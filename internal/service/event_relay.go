package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/hospital-analytics/internal/events"
)

// Publisher forwards serialized events to subscribers outside the process.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// EventRelay logs domain events and forwards them to the dashboard channel.
type EventRelay struct {
	dispatcher events.Dispatcher
	publisher  Publisher
	channel    string
	logger     *zap.Logger
}

// NewEventRelay creates the relay. A nil publisher only logs.
func NewEventRelay(dispatcher events.Dispatcher, publisher Publisher, channel string, logger *zap.Logger) *EventRelay {
	return &EventRelay{
		dispatcher: dispatcher,
		publisher:  publisher,
		channel:    channel,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to every event type.
func (r *EventRelay) RegisterHandlers() {
	if r.dispatcher == nil {
		return
	}
	for _, eventType := range events.AllEventTypes {
		r.dispatcher.Subscribe(eventType, r.relay)
	}
}

func (r *EventRelay) relay(ctx context.Context, event events.Event) error {
	r.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("subject", event.Subject),
		zap.Any("payload", event.Payload))

	if r.publisher == nil || r.channel == "" {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := r.publisher.Publish(ctx, r.channel, body); err != nil {
		r.logger.Warn("event relay publish failed",
			zap.String("event_id", event.ID),
			zap.String("channel", r.channel),
			zap.Error(err))
		return err
	}
	return nil
}
