package app

import (
	"context"
	"fmt"
	"os"

	"orderservice/internal/catalog"
	"orderservice/internal/config"
	"orderservice/internal/order"
	"orderservice/internal/platform/kafka"
	"orderservice/internal/platform/mongodb"
	"orderservice/internal/platform/observability"
	"orderservice/internal/platform/postgres"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// Container holds expensive-to-create singleton resources and dependencies
type Container struct {
	config            *config.Config
	logger            observability.Logger
	tracer            observability.Tracer
	products          catalog.Repository
	orders            order.Repository
	messageConsumer   kafka.Consumer
	messageProducer   kafka.Producer
	closeStorage      func(context.Context) error
	otelLogShutdown   observability.ShutdownFunc
	otelTraceShutdown observability.ShutdownFunc
}

// NewContainer creates and initializes all infrastructure components
func NewContainer(ctx context.Context) (*Container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	c := &Container{config: cfg}

	if err := c.setupLogger(); err != nil {
		return nil, err
	}

	c.setupObservability(ctx)

	if err := c.setupStorage(ctx); err != nil {
		c.Shutdown(context.Background())
		return nil, err
	}

	if err := c.setupKafka(); err != nil {
		c.Shutdown(context.Background())
		return nil, err
	}

	return c, nil
}

// setupLogger starts with a plain production logger until OTel is ready
func (c *Container) setupLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	c.logger = logger
	return nil
}

// setupObservability configures OpenTelemetry logging and tracing. Failures
// are logged and the service keeps running without export.
func (c *Container) setupObservability(ctx context.Context) {
	otelLogShutdown, err := observability.SetupLoggingSDK(ctx, c.config)
	if err != nil {
		c.logger.Error("Failed to setup OpenTelemetry logging", zap.Error(err))
	}
	c.otelLogShutdown = otelLogShutdown

	_, otelTraceShutdown, err := observability.SetupTracingSDK(ctx, c.config)
	if err != nil {
		c.logger.Error("Failed to setup OpenTelemetry tracing", zap.Error(err))
	}
	c.otelTraceShutdown = otelTraceShutdown

	c.logger = observability.NewLogger()
	c.logger.Info("Logger re-initialized with OpenTelemetry bridge",
		zap.Bool("otel_export", c.config.OtelEnabled()),
	)

	c.tracer = otel.Tracer(config.ServiceName)
}

func (c *Container) setupStorage(ctx context.Context) error {
	switch c.config.StorageDriver {
	case config.StoragePostgres:
		pool, err := postgres.Connect(ctx, c.config.PostgresDSN)
		if err != nil {
			return err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return err
		}
		c.products = catalog.NewPostgresRepository(pool)
		c.orders = order.NewPostgresRepository(pool)
		c.closeStorage = func(context.Context) error {
			pool.Close()
			return nil
		}

	case config.StorageMongo:
		client, db, err := mongodb.Connect(ctx, c.config.MongoURI, c.config.MongoDatabase)
		if err != nil {
			return err
		}
		c.products = catalog.NewMongoRepository(db)
		c.orders = order.NewMongoRepository(db)
		c.closeStorage = client.Disconnect

	default:
		c.products = catalog.NewMemoryRepository()
		c.orders = order.NewMemoryRepository()
	}

	c.logger.Info("Storage ready", zap.String("driver", c.config.StorageDriver))
	return nil
}

// setupKafka initializes the instrumented consumer and producer
func (c *Container) setupKafka() error {
	if !c.config.KafkaEnabled {
		c.logger.Info("Kafka disabled, serving HTTP only")
		return nil
	}

	c.logger.Info("Connecting to Kafka",
		zap.String("broker", c.config.KafkaBroker),
		zap.String("consumer_topic", config.OrderCreatedTopic),
		zap.String("producer_topic", config.StockAdjustedTopic),
	)

	consumer, err := kafka.NewConsumer(c.config.KafkaBroker)
	if err != nil {
		return err
	}
	c.messageConsumer = consumer

	producer, err := kafka.NewProducer(c.config.KafkaBroker, otel.GetTracerProvider())
	if err != nil {
		return err
	}
	c.messageProducer = producer

	return nil
}

// Shutdown gracefully shuts down all infrastructure components
func (c *Container) Shutdown(ctx context.Context) {
	c.logger.Info("Shutting down infrastructure...")

	if c.messageConsumer != nil {
		if err := c.messageConsumer.Close(); err != nil {
			c.logger.Error("Failed to close message consumer", zap.Error(err))
		}
	}

	if c.messageProducer != nil {
		if err := c.messageProducer.Close(); err != nil {
			c.logger.Error("Failed to close message producer", zap.Error(err))
		}
	}

	if c.closeStorage != nil {
		if err := c.closeStorage(ctx); err != nil {
			c.logger.Error("Failed to close storage", zap.Error(err))
		}
	}

	if err := observability.JoinShutdown(c.otelLogShutdown, c.otelTraceShutdown)(ctx); err != nil {
		c.logger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
	}

	if err := c.logger.Sync(); err != nil {
		// Can't log this error since logger might be closed
		fmt.Fprintf(os.Stderr, "Failed to sync logger: %v\n", err)
	}
}

func (c *Container) Config() *config.Config { return c.config }
func (c *Container) Logger() observability.Logger { return c.logger }
func (c *Container) Tracer() observability.Tracer { return c.tracer }
func (c *Container) Products() catalog.Repository { return c.products }
func (c *Container) Orders() order.Repository { return c.orders }
func (c *Container) MessageConsumer() kafka.Consumer { return c.messageConsumer }
func (c *Container) MessageProducer() kafka.Producer { return c.messageProducer }
