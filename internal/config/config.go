package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	RecordStoreDynamoDB = "dynamodb"
	RecordStoreRedis    = "redis"
	RecordStorePostgres = "postgres"

	BlobStoreS3       = "s3"
	BlobStoreFirebase = "firebase"
)

// Config holds the environment driven configuration for the prompt service.
type Config struct {
	// Service
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"prompt-service"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	Port            int           `env:"PORT" envDefault:"3000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// Backend selection
	RecordStore string `env:"RECORD_STORE" envDefault:"dynamodb"`
	BlobStore   string `env:"BLOB_STORE" envDefault:"s3"`
	MediaFolder string `env:"MEDIA_FOLDER" envDefault:"generated-media/"`

	// AWS (DynamoDB and S3)
	AWSRegion          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	DynamoDBTable      string `env:"DYNAMODB_TABLE" envDefault:"prompts"`
	DynamoDBEndpoint   string `env:"DYNAMODB_ENDPOINT"`
	S3Bucket           string `env:"S3_BUCKET"`
	S3Endpoint         string `env:"S3_ENDPOINT"`
	S3UsePathStyle     bool   `env:"S3_USE_PATH_STYLE" envDefault:"false"`

	// Postgres
	DatabaseURL      string `env:"DATABASE_URL"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"prompts"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// Redis (record store and pending deletion queue)
	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Firebase (auth and storage)
	FirebaseServiceAccountPath string `env:"FIREBASE_SERVICE_ACCOUNT_PATH"`
	FirebaseProjectID          string `env:"FIREBASE_PROJECT_ID"`
	FirebaseStorageBucket      string `env:"FIREBASE_STORAGE_BUCKET"`

	// Behaviour
	AuthEnabled            bool   `env:"AUTH_ENABLED" envDefault:"false"`
	MetricsEnabled         bool   `env:"METRICS_ENABLED" envDefault:"true"`
	ExposeStoreErrors      bool   `env:"EXPOSE_STORE_ERRORS" envDefault:"false"`
	StrictUpdateValidation bool   `env:"STRICT_UPDATE_VALIDATION" envDefault:"false"`
	CleanupSchedule        string `env:"CLEANUP_SCHEDULE" envDefault:"@every 5m"`
}

// Load parses environment variables into Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.RecordStore = strings.ToLower(strings.TrimSpace(cfg.RecordStore))
	cfg.BlobStore = strings.ToLower(strings.TrimSpace(cfg.BlobStore))
	cfg.S3Bucket = strings.TrimSpace(cfg.S3Bucket)
	cfg.AWSAccessKeyID = strings.TrimSpace(cfg.AWSAccessKeyID)
	cfg.AWSSecretAccessKey = strings.TrimSpace(cfg.AWSSecretAccessKey)
	cfg.CleanupSchedule = strings.TrimSpace(cfg.CleanupSchedule)
	if cfg.MediaFolder != "" && !strings.HasSuffix(cfg.MediaFolder, "/") {
		cfg.MediaFolder += "/"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.RecordStore {
	case RecordStoreDynamoDB:
		if c.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required when RECORD_STORE=%s", RecordStoreDynamoDB)
		}
	case RecordStoreRedis:
		if c.RedisHost == "" {
			return fmt.Errorf("REDIS_HOST is required when RECORD_STORE=%s", RecordStoreRedis)
		}
	case RecordStorePostgres:
	default:
		return fmt.Errorf("unknown RECORD_STORE %q", c.RecordStore)
	}

	switch c.BlobStore {
	case BlobStoreS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when BLOB_STORE=%s", BlobStoreS3)
		}
	case BlobStoreFirebase:
		if c.FirebaseStorageBucket == "" {
			return fmt.Errorf("FIREBASE_STORAGE_BUCKET is required when BLOB_STORE=%s", BlobStoreFirebase)
		}
	default:
		return fmt.Errorf("unknown BLOB_STORE %q", c.BlobStore)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	return nil
}

// NeedsFirebase reports whether any configured component uses the Firebase app.
func (c *Config) NeedsFirebase() bool {
	return c.AuthEnabled || c.BlobStore == BlobStoreFirebase
}

// UsesRedis reports whether a Redis connection is configured.
func (c *Config) UsesRedis() bool {
	return c.RedisHost != ""
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
