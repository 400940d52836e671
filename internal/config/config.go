package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	ServiceName    = "order-service"
	ServiceVersion = "0.1.0"
)

const (
	OrderCreatedTopic  = "OrderCreated"
	StockAdjustedTopic = "StockAdjusted"
	GroupID            = "order-service-group"
	BatchTimeout       = 10 * time.Millisecond
	BatchSize          = 100
)

const (
	LogsPath      = "/otlp/v1/logs"   // Grafana Cloud OTLP path
	TracesPath    = "/otlp/v1/traces" // Grafana Cloud OTLP path
	ExportTimeout = 30 * time.Second
	MaxQueueSize  = 2048
)

const (
	ShutdownTimeout     = 10 * time.Second
	ReadHeaderTimeout   = 5 * time.Second
	PostgresMaxConns    = 10
	MongoConnectTimeout = 10 * time.Second
)

// Storage drivers understood by STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

// Config holds environment-specific configuration
type Config struct {
	KafkaBroker    string
	KafkaEnabled   bool
	HTTPAddr       string
	StorageDriver  string
	PostgresDSN    string
	MongoURI       string
	MongoDatabase  string
	OtelEndpoint   string
	OtelAuthHeader string
}

// OtelEnabled reports whether OTLP exporters should be configured.
func (c *Config) OtelEnabled() bool {
	return c.OtelEndpoint != ""
}

// LoadConfig loads configuration from environment variables with sensible defaults
func LoadConfig() (*Config, error) {
	kafkaEnabled, err := strconv.ParseBool(getEnvOrDefault("KAFKA_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("KAFKA_ENABLED must be a boolean: %w", err)
	}

	config := &Config{
		KafkaBroker:    getEnvOrDefault("KAFKA_BROKER", "localhost:9092"),
		KafkaEnabled:   kafkaEnabled,
		HTTPAddr:       getEnvOrDefault("HTTP_ADDR", ":8080"),
		StorageDriver:  getEnvOrDefault("STORAGE_DRIVER", StorageMemory),
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDatabase:  getEnvOrDefault("MONGO_DATABASE", "orders"),
		OtelEndpoint:   os.Getenv("OTEL_ENDPOINT"),
		OtelAuthHeader: os.Getenv("OTEL_AUTH_HEADER"),
	}

	if config.KafkaEnabled && config.KafkaBroker == "" {
		return nil, fmt.Errorf("KAFKA_BROKER cannot be empty")
	}
	if config.HTTPAddr == "" {
		return nil, fmt.Errorf("HTTP_ADDR cannot be empty")
	}

	switch config.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if config.PostgresDSN == "" {
			return nil, fmt.Errorf("POSTGRES_DSN is required for the postgres storage driver")
		}
	case StorageMongo:
		if config.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI is required for the mongo storage driver")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", config.StorageDriver)
	}

	if config.OtelEndpoint != "" && config.OtelAuthHeader == "" {
		return nil, fmt.Errorf("OTEL_AUTH_HEADER is required when OTEL_ENDPOINT is set")
	}

	return config, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
