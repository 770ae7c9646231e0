package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/hospital-analytics/internal/events"
)

type capturePublisher struct {
	channel  string
	payloads [][]byte
	err      error
}

func (c *capturePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	c.channel = channel
	c.payloads = append(c.payloads, payload)
	return c.err
}

func TestEventRelayForwardsEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	publisher := &capturePublisher{}
	NewEventRelay(dispatcher, publisher, "hospital-analytics:events", zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:        "evt-1",
		Type:      events.EventBillCreated,
		Subject:   "bill:3",
		Timestamp: time.Date(2026, time.October, 15, 8, 0, 0, 0, time.UTC),
		Payload:   events.BillCreatedPayload{BillID: 3, TotalAmount: 900},
	})
	require.NoError(t, err)

	assert.Equal(t, "hospital-analytics:events", publisher.channel)
	require.Len(t, publisher.payloads, 1)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &decoded))
	assert.Equal(t, "bill_created", decoded["type"])
	assert.Equal(t, "bill:3", decoded["subject"])
	assert.Equal(t, map[string]any{"bill_id": 3.0, "total_amount": 900.0}, decoded["payload"])
}

func TestEventRelayReportsPublishFailure(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	boom := errors.New("redis down")
	NewEventRelay(dispatcher, &capturePublisher{err: boom}, "ch", zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventFeedbackSubmitted})
	assert.ErrorIs(t, err, boom)
}

func TestEventRelayWithoutPublisher(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	NewEventRelay(dispatcher, nil, "", zap.NewNop()).RegisterHandlers()

	assert.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventOccupancyInitialized}))
}
