// Package kafka provides the outbound Kafka adapter publishing order events
// for the stock service.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// senderName identifies this service in outgoing messages.
const senderName = "order-service"

// orderCreatedMessage is the wire format of the order-created event. The
// stock service validates each item and answers with one result per item.
type orderCreatedMessage struct {
	OrderID string             `json:"order_id"`
	SendBy  string             `json:"send_by"`
	SendAt  time.Time          `json:"send_at"`
	Items   []orderItemMessage `json:"items"`
}

type orderItemMessage struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderCreatedPublisher publishes order-created events to Kafka.
// Implements ports.OrderCreatedPublisher.
type OrderCreatedPublisher struct {
	writer *kafka.Writer
	topic  string
	logger *slog.Logger
}

// NewOrderCreatedPublisher creates a publisher writing to the given topic.
func NewOrderCreatedPublisher(brokers []string, topic string, logger *slog.Logger) *OrderCreatedPublisher {
	return &OrderCreatedPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			Async:        false,
		},
		topic:  topic,
		logger: logger.With("component", "OrderCreatedPublisher"),
	}
}

// PublishCreated publishes exactly one event for the created order, keyed by
// the order id so all events of one order land on the same partition.
func (p *OrderCreatedPublisher) PublishCreated(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	lines := aggregate.Lines()
	items := make([]orderItemMessage, 0, len(lines))
	for _, line := range lines {
		items = append(items, orderItemMessage{
			ProductID: line.ProductID().String(),
			Quantity:  line.Quantity(),
		})
	}

	message := orderCreatedMessage{
		OrderID: aggregate.ID().String(),
		SendBy:  senderName,
		SendAt:  time.Now().UTC(),
		Items:   items,
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal order-created event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(message.OrderID),
		Value: data,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish order-created event: %w", err)
	}

	p.logger.Info("published order-created event",
		"orderId", message.OrderID,
		"topic", p.topic,
		"items", len(items),
	)

	return nil
}

// Close flushes and closes the underlying writer.
func (p *OrderCreatedPublisher) Close() error {
	return p.writer.Close()
}
