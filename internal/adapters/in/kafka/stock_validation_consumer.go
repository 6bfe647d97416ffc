// Package kafka provides the inbound Kafka adapter consuming stock-validation
// results from the stock service.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/srCochayuyo/censudex-orders-service/internal/core/application/usecases/commands"
	"github.com/srCochayuyo/censudex-orders-service/internal/core/domain/model/kernel"

	"github.com/segmentio/kafka-go"
)

// stockValidationMessage is the wire format of one per-line validation result.
type stockValidationMessage struct {
	EventType         string    `json:"event_type"`
	ProductID         string    `json:"product_id"`
	RequestedQuantity int       `json:"requested_quantity"`
	AvailableQuantity int       `json:"available_quantity"`
	OrderID           string    `json:"order_id"`
	Timestamp         time.Time `json:"timestamp"`
	ValidationResult  bool      `json:"validation_result"`
}

// validationHandler folds one validation result into the order lifecycle.
// Implemented by commands.RecordStockValidationCommandHandler.
type validationHandler interface {
	Handle(ctx context.Context, cmd commands.RecordStockValidationCommand) error
}

// StockValidationConsumer consumes stock-validation results and feeds them to
// the record-stock-validation handler. Results arrive out of order and at
// least once; the aggregation layer tolerates both, so messages are committed
// after a successful handle and redelivered otherwise.
type StockValidationConsumer struct {
	reader  *kafka.Reader
	handler validationHandler
	logger  *slog.Logger
	workers int
	wg      sync.WaitGroup
}

// NewStockValidationConsumer creates a consumer reading the given topic as
// part of the given consumer group. workers controls how many messages are
// processed concurrently.
func NewStockValidationConsumer(
	brokers []string,
	groupID string,
	topic string,
	workers int,
	handler validationHandler,
	logger *slog.Logger,
) *StockValidationConsumer {
	if workers < 1 {
		workers = 1
	}

	return &StockValidationConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			GroupID:  groupID,
			Topic:    topic,
			MinBytes: 10,
			MaxBytes: 10e6,
		}),
		handler: handler,
		logger:  logger.With("component", "StockValidationConsumer"),
		workers: workers,
	}
}

// Start launches the consumer workers. Each worker fetches, handles and
// commits messages until the context is cancelled. Returns immediately.
func (c *StockValidationConsumer) Start(ctx context.Context) {
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.consume(ctx)
		}()
	}
}

// Close stops the underlying reader and waits for the workers to drain.
func (c *StockValidationConsumer) Close() error {
	err := c.reader.Close()
	c.wg.Wait()
	return err
}

func (c *StockValidationConsumer) consume(ctx context.Context) {
	for {
		message, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("failed to fetch message", "error", err)
			return
		}

		if c.handle(ctx, message.Value) {
			if err = c.reader.CommitMessages(ctx, message); err != nil {
				c.logger.Error("failed to commit message", "error", err)
			}
		}
	}
}

// handle processes one raw message. Returns true when the message should be
// committed: successfully handled, or malformed beyond retry.
func (c *StockValidationConsumer) handle(ctx context.Context, value []byte) bool {
	var message stockValidationMessage
	if err := json.Unmarshal(value, &message); err != nil {
		c.logger.Warn("discarding malformed validation message", "error", err)
		return true
	}

	orderID, err := kernel.UUIDFromString(message.OrderID)
	if err != nil {
		c.logger.Warn("discarding validation message with invalid order id",
			"orderId", message.OrderID,
			"error", err,
		)
		return true
	}

	productID, err := kernel.UUIDFromString(message.ProductID)
	if err != nil {
		c.logger.Warn("discarding validation message with invalid product id",
			"productId", message.ProductID,
			"error", err,
		)
		return true
	}

	cmd, err := commands.NewRecordStockValidationCommand(orderID, productID, message.ValidationResult)
	if err != nil {
		c.logger.Warn("discarding invalid validation message", "error", err)
		return true
	}

	if err = c.handler.Handle(ctx, cmd); err != nil {
		c.logger.Error("failed to record validation result, message will be redelivered",
			"orderId", message.OrderID,
			"productId", message.ProductID,
			"error", err,
		)
		return false
	}

	c.logger.Debug("validation result recorded",
		"orderId", message.OrderID,
		"productId", message.ProductID,
		"success", message.ValidationResult,
	)
	return true
}
