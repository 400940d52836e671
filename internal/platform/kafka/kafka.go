package kafka

import (
	"fmt"

	"orderservice/internal/config"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// NewConsumer creates an instrumented reader for the OrderCreated topic.
func NewConsumer(broker string) (Consumer, error) {
	baseReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   config.OrderCreatedTopic,
		GroupID: config.GroupID,
	})

	reader, err := otelkafka.NewReader(baseReader)
	if err != nil {
		return nil, fmt.Errorf("create instrumented kafka reader: %w", err)
	}
	return reader, nil
}

// NewProducer creates an instrumented writer for the StockAdjusted topic.
func NewProducer(broker string, tp trace.TracerProvider) (Producer, error) {
	baseWriter := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        config.StockAdjustedTopic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: config.BatchTimeout,
		BatchSize:    config.BatchSize,
	}

	writer, err := otelkafka.NewWriter(baseWriter,
		otelkafka.WithTracerProvider(tp),
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes(
			[]attribute.KeyValue{
				semconv.MessagingDestinationNameKey.String(config.StockAdjustedTopic),
				attribute.String("messaging.kafka.client_id", config.ServiceName),
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create instrumented kafka writer: %w", err)
	}
	return writer, nil
}
