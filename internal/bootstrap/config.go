// Package bootstrap wires every adapter, repository and use case into a
// runnable Service, the way the teacher's own bootstrap package
// constructs a ConsumerService: config, logger, telemetry, connections,
// repositories, use cases, consumer routes, then Run().
package bootstrap

import (
	"fmt"

	"github.com/joho/godotenv"
)

const ApplicationName = "swpt-payments"

// Config is the coordinator's environment-driven configuration.
type Config struct {
	EnvName  string `env:"ENV_NAME"`
	LogLevel string `env:"LOG_LEVEL"`

	DBHost     string `env:"DB_HOST"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBPort     string `env:"DB_PORT"`

	MongoURI     string `env:"MONGO_URI"`
	MongoHost    string `env:"MONGO_HOST"`
	MongoName    string `env:"MONGO_NAME"`
	MongoUser    string `env:"MONGO_USER"`
	MongoPass    string `env:"MONGO_PASSWORD"`
	MongoPort    string `env:"MONGO_PORT"`

	RedisURI string `env:"REDIS_URI"`

	RabbitURI        string `env:"RABBITMQ_URI"`
	RabbitHost       string `env:"RABBITMQ_HOST"`
	RabbitPortAMQP   string `env:"RABBITMQ_PORT_AMQP"`
	RabbitUser       string `env:"RABBITMQ_DEFAULT_USER"`
	RabbitPass       string `env:"RABBITMQ_DEFAULT_PASS"`

	QueueCreateOffer         string `env:"RABBITMQ_CREATE_OFFER_QUEUE"`
	QueueCancelOffer         string `env:"RABBITMQ_CANCEL_OFFER_QUEUE"`
	QueueMakePaymentOrder    string `env:"RABBITMQ_MAKE_PAYMENT_ORDER_QUEUE"`
	QueuePreparedTransfer    string `env:"RABBITMQ_PREPARED_TRANSFER_QUEUE"`
	QueueRejectedTransfer    string `env:"RABBITMQ_REJECTED_TRANSFER_QUEUE"`

	HTTPAddr string `env:"HTTP_ADDR"`

	OtelServiceName         string `env:"OTEL_RESOURCE_SERVICE_NAME"`
	OtelServiceVersion      string `env:"OTEL_RESOURCE_SERVICE_VERSION"`
	OtelDeploymentEnv       string `env:"OTEL_RESOURCE_DEPLOYMENT_ENVIRONMENT"`
	OtelColExporterEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	FlushPaymentOrdersDays int `env:"APP_FLUSH_PAYMENT_ORDERS_DAYS"`
	FlushPaymentProofsDays int `env:"APP_FLUSH_PAYMENT_PROOFS_DAYS"`
}

// LoadConfig reads .env (if present) then the process environment into
// a Config, applying the housekeeping cutoff defaults from §6.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	if err := SetConfigFromEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("bootstrap: load config: %w", err)
	}

	if cfg.FlushPaymentOrdersDays <= 0 {
		cfg.FlushPaymentOrdersDays = 30
	}

	if cfg.FlushPaymentProofsDays <= 0 {
		cfg.FlushPaymentProofsDays = 180
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// postgresDSN builds the libpq-style connection string pgx/stdlib expects.
func (c *Config) postgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func (c *Config) mongoURI() string {
	return fmt.Sprintf("%s://%s:%s@%s:%s", c.MongoURI, c.MongoUser, c.MongoPass, c.MongoHost, c.MongoPort)
}

func (c *Config) rabbitURI() string {
	return fmt.Sprintf("%s://%s:%s@%s:%s", c.RabbitURI, c.RabbitUser, c.RabbitPass, c.RabbitHost, c.RabbitPortAMQP)
}
