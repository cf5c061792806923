package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMongo = "mongo"
	DriverMySQL = "mysql"
)

type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	GRPCAddr        string        `envconfig:"GRPC_ADDR" default:":50051"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	StoreDriver       string `envconfig:"STORE_DRIVER" default:"mongo"`
	MongoURI          string `envconfig:"MONGODB_URI"`
	MongoDatabase     string `envconfig:"MONGODB_DATABASE" default:"cafe"`
	MongoMaxPoolSize  uint64 `envconfig:"MONGODB_MAX_POOL_SIZE" default:"20"`
	MySQLDSN          string `envconfig:"MYSQL_DSN"`
	MySQLMaxOpenConns int    `envconfig:"MYSQL_MAX_OPEN_CONNS" default:"25"`
	MySQLMaxIdleConns int    `envconfig:"MYSQL_MAX_IDLE_CONNS" default:"10"`

	RedisAddr      string        `envconfig:"REDIS_ADDR"`
	IdempotencyTTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`

	AMQPURL             string `envconfig:"AMQP_URL"`
	OrderEventsExchange string `envconfig:"ORDER_EVENTS_EXCHANGE" default:"order_events"`
	EventWorkers        int    `envconfig:"EVENT_WORKERS" default:"2"`
	EventQueueSize      int    `envconfig:"EVENT_QUEUE_SIZE" default:"256"`

	JWTSecret         string        `envconfig:"JWT_SECRET"`
	AdminEmail        string        `envconfig:"ADMIN_EMAIL"`
	AdminPassword     string        `envconfig:"ADMIN_PASSWORD"`
	AdminPasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH"`
	AdminCookieName   string        `envconfig:"ADMIN_COOKIE_NAME" default:"admin_token"`
	AdminCookieMaxAge time.Duration `envconfig:"ADMIN_COOKIE_MAX_AGE" default:"168h"`
	CookieSecure      bool          `envconfig:"COOKIE_SECURE" default:"false"`

	S3Bucket        string `envconfig:"S3_BUCKET"`
	S3Prefix        string `envconfig:"S3_PREFIX" default:"menu"`
	S3Endpoint      string `envconfig:"S3_ENDPOINT"`
	S3PublicBaseURL string `envconfig:"S3_PUBLIC_BASE_URL"`
	AWSRegion       string `envconfig:"AWS_REGION" default:"us-east-1"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI is required when STORE_DRIVER=mongo")
		}
	case DriverMySQL:
		if c.MySQLDSN == "" {
			return errors.New("MYSQL_DSN is required when STORE_DRIVER=mysql")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.EventWorkers < 1 {
		return errors.New("EVENT_WORKERS must be at least 1")
	}
	return nil
}
