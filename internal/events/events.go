package events

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"orderbot/internal/domain"
)

// OrderTopic carries one message per placed order.
const OrderTopic = "orders.created"

// OrderCreated is the message contract for OrderTopic.
type OrderCreated struct {
	OrderID           string    `json:"orderId"`
	OrderNumber       int64     `json:"orderNumber"`
	UserChatID        int64     `json:"userChatId"`
	DeliveryType      string    `json:"deliveryType"`
	ItemsTotalCents   int64     `json:"itemsTotalCents"`
	DeliveryCostCents int64     `json:"deliveryCostCents"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}

type Client struct {
	Brokers []string
}

// NewClient parses a comma separated broker list. An empty list disables
// publishing without being an error.
func NewClient(brokersCSV string) *Client {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return &Client{Brokers: brokers}
}

func (c *Client) Enabled() bool {
	return len(c.Brokers) > 0
}

func (c *Client) NewWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(c.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OrderPublisher emits an OrderCreated message for every placed order, keyed
// by order id so retries of one order land in one partition.
type OrderPublisher struct {
	writer messageWriter
	logger *log.Logger
}

func NewOrderPublisher(writer messageWriter, logger *log.Logger) *OrderPublisher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &OrderPublisher{writer: writer, logger: logger}
}

// OrderCreated publishes the event. Failures are logged, never propagated:
// the order is already persisted and must not be failed by the event bus.
func (p *OrderPublisher) OrderCreated(ctx context.Context, o *domain.Order) {
	event := OrderCreated{
		OrderID:           o.ID,
		OrderNumber:       o.OrderNumber,
		UserChatID:        o.UserChatID,
		DeliveryType:      o.DeliveryType,
		ItemsTotalCents:   o.ItemsTotalCents,
		DeliveryCostCents: o.DeliveryCostCents,
		Status:            o.Status,
		CreatedAt:         o.CreatedAt,
	}
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Printf("events: marshal order=%s error=%v", o.ID, err)
		return
	}
	msg := kafka.Message{Key: []byte(o.ID), Value: data, Time: time.Now().UTC()}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Printf("events: publish order=%s error=%v", o.ID, err)
	}
}

func (p *OrderPublisher) Close() error {
	if closer, ok := p.writer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
