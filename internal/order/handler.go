package order

import (
	"context"
	"encoding/json"
	"fmt"

	"orderservice/internal/platform/observability"

	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

// MessageHandler defines the interface for processing incoming messages.
type MessageHandler interface {
	HandleOrderCreated(ctx context.Context, msg kafkago.Message) error
}

// Creator is the part of Service the Kafka handler needs.
type Creator interface {
	Create(ctx context.Context, in CreateInput) (Order, *StockAdjustedEvent, error)
}

// KafkaMessageHandler turns OrderCreated messages into recorded orders.
type KafkaMessageHandler struct {
	orders Creator
	logger observability.Logger
}

func NewMessageHandler(orders Creator, logger observability.Logger) MessageHandler {
	return &KafkaMessageHandler{
		orders: orders,
		logger: logger,
	}
}

// HandleOrderCreated processes an OrderCreated message from Kafka
func (h *KafkaMessageHandler) HandleOrderCreated(ctx context.Context, msg kafkago.Message) error {
	msgCtx := h.extractTraceContext(ctx, msg.Headers)

	h.logger.Info("Kafka message received",
		zap.ByteString("key", msg.Key),
		zap.Int("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
	)

	var event OrderCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		h.logger.Error("Invalid JSON in OrderCreated event",
			zap.Error(err),
			zap.ByteString("raw_value", msg.Value),
		)
		return fmt.Errorf("decode OrderCreated event: %w", err)
	}

	order, adjusted, err := h.orders.Create(msgCtx, CreateInput{
		ID:        event.OrderID,
		ProductID: event.ProductID,
		Quantity:  event.Quantity,
	})
	if err != nil {
		h.logger.Error("Failed to process OrderCreated event",
			zap.Error(err),
			zap.String("order_id", event.OrderID),
			zap.String("product_id", event.ProductID),
		)
		return err
	}

	fields := []zap.Field{zap.String("order_id", order.ID)}
	if adjusted != nil {
		fields = append(fields, zap.Int64("stock", adjusted.Stock))
	}
	h.logger.Info("OrderCreated event processed", fields...)
	return nil
}

// extractTraceContext links spans to the producer's trace via message headers.
func (h *KafkaMessageHandler) extractTraceContext(ctx context.Context, headers []kafkago.Header) context.Context {
	carrier := propagation.MapCarrier{}
	for _, header := range headers {
		carrier[string(header.Key)] = string(header.Value)
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}
