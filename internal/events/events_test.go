package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderbot/internal/domain"
)

type capturingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *capturingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestNewClientParsesBrokers(t *testing.T) {
	assert.False(t, NewClient("").Enabled())
	assert.False(t, NewClient(" , ").Enabled())

	c := NewClient("localhost:9092, broker2:9092")
	assert.True(t, c.Enabled())
	assert.Equal(t, []string{"localhost:9092", "broker2:9092"}, c.Brokers)
}

func TestOrderPublisherEmitsEvent(t *testing.T) {
	writer := &capturingWriter{}
	publisher := NewOrderPublisher(writer, nil)

	publisher.OrderCreated(context.Background(), &domain.Order{
		ID:              "ord-1",
		OrderNumber:     12,
		UserChatID:      7,
		DeliveryType:    domain.DeliveryPickup,
		ItemsTotalCents: 5130,
		Status:          domain.OrderStatusNew,
		CreatedAt:       time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	})

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "ord-1", string(msg.Key))

	var event OrderCreated
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, int64(12), event.OrderNumber)
	assert.Equal(t, int64(5130), event.ItemsTotalCents)
	assert.Equal(t, domain.OrderStatusNew, event.Status)
}

func TestOrderPublisherSwallowsWriteErrors(t *testing.T) {
	writer := &capturingWriter{err: errors.New("broker down")}
	publisher := NewOrderPublisher(writer, nil)

	publisher.OrderCreated(context.Background(), &domain.Order{ID: "ord-2"})

	assert.Empty(t, writer.messages)
}
