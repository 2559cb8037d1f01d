package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	ServerPort string `envconfig:"SERVER_PORT" default:"8009"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`

	// Database
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"lickscroll"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// Redis
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// RabbitMQ
	RabbitMQHost     string `envconfig:"RABBITMQ_HOST" default:"localhost"`
	RabbitMQPort     string `envconfig:"RABBITMQ_PORT" default:"5672"`
	RabbitMQUser     string `envconfig:"RABBITMQ_USER" default:"guest"`
	RabbitMQPassword string `envconfig:"RABBITMQ_PASSWORD" default:"guest"`

	// JWT
	JWTSecret string `envconfig:"JWT_SECRET" default:"your-secret-key-change-in-production"`

	// AWS S3
	AWSRegion          string `envconfig:"AWS_REGION" default:"us-east-1"`
	AWSAccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID" default:""`
	AWSSecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY" default:""`
	AWSEndpoint        string `envconfig:"AWS_ENDPOINT" default:""`
	S3UseSSL           string `envconfig:"S3_USE_SSL" default:"true"`
	S3BucketName       string `envconfig:"S3_BUCKET_NAME" default:"lick-scroll-statements"`

	// Monetization
	PayoutMinCents            int64         `envconfig:"PAYOUT_MIN_CENTS" default:"1000"`
	SubscriptionPeriod        time.Duration `envconfig:"SUBSCRIPTION_PERIOD" default:"720h"`
	SubscriptionSweepSchedule string        `envconfig:"SUBSCRIPTION_SWEEP_SCHEDULE" default:"*/15 * * * *"`
	ContentCacheTTL           time.Duration `envconfig:"CONTENT_CACHE_TTL" default:"5m"`
	PaymentProvider           string        `envconfig:"PAYMENT_PROVIDER" default:"mock"`

	// Identity verification webhook
	VerificationWebhookSecret string `envconfig:"VERIFICATION_WEBHOOK_SECRET" default:""`
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.PayoutMinCents <= 0 {
		return nil, fmt.Errorf("PAYOUT_MIN_CENTS must be positive, got %d", cfg.PayoutMinCents)
	}

	return &cfg, nil
}

// DatabaseDSN returns the PostgreSQL DSN in key=value form.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
	)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.RabbitMQUser,
		c.RabbitMQPassword,
		c.RabbitMQHost,
		c.RabbitMQPort,
	)
}
