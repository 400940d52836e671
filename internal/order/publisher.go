package order

import (
	"context"
	"encoding/json"
	"fmt"

	"orderservice/internal/platform/kafka"
	"orderservice/internal/platform/observability"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaPublisher writes StockAdjusted events keyed by product id, so all
// adjustments for one product land on the same partition.
type KafkaPublisher struct {
	producer kafka.Producer
	logger   observability.Logger
}

func NewKafkaPublisher(producer kafka.Producer, logger observability.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, logger: logger}
}

func (p *KafkaPublisher) PublishStockAdjusted(ctx context.Context, event StockAdjustedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode StockAdjusted event: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(event.ProductID),
		Value: payload,
	}
	if err := p.producer.WriteMessage(ctx, msg); err != nil {
		return fmt.Errorf("write StockAdjusted event: %w", err)
	}

	p.logger.Info("Sent StockAdjusted event",
		zap.String("order_id", event.OrderID),
		zap.String("product_id", event.ProductID),
	)
	return nil
}
