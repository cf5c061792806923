package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rl1809/cafe/internal/adapter/messaging"
	"github.com/rl1809/cafe/internal/adapter/storage"
	"github.com/rl1809/cafe/internal/config"
	"github.com/rl1809/cafe/internal/port"
)

func noop() {}

// OpenIdempotencyStore returns nil when REDIS_ADDR is unset, which turns
// Idempotency-Key handling off.
func OpenIdempotencyStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (port.IdempotencyStore, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("redis not configured, idempotency keys disabled")
		return nil, noop, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		PoolSize: 20,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
	return storage.NewRedisAdapter(rdb, cfg.IdempotencyTTL), func() { rdb.Close() }, nil
}

// OpenEventPublisher falls back to logging events when AMQP_URL is unset.
func OpenEventPublisher(cfg *config.Config, logger *zap.Logger) (port.EventPublisher, func(), error) {
	if cfg.AMQPURL == "" {
		logger.Info("rabbitmq not configured, order events will be logged")
		return messaging.NewLogPublisher(logger), noop, nil
	}

	pub, err := messaging.NewRabbitMQPublisher(cfg.AMQPURL, cfg.OrderEventsExchange, logger)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("connected to rabbitmq", zap.String("exchange", cfg.OrderEventsExchange))
	closeFn := func() {
		if err := pub.Close(); err != nil {
			logger.Warn("rabbitmq close failed", zap.Error(err))
		}
	}
	return pub, closeFn, nil
}

// OpenImageStore returns nil when S3_BUCKET is unset; uploads then fail.
func OpenImageStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (port.ImageStore, error) {
	if cfg.S3Bucket == "" {
		logger.Info("s3 not configured, image upload disabled")
		return nil, nil
	}

	s3cfg := storage.S3Config{
		Region:        cfg.AWSRegion,
		Bucket:        cfg.S3Bucket,
		Prefix:        cfg.S3Prefix,
		Endpoint:      cfg.S3Endpoint,
		PublicBaseURL: cfg.S3PublicBaseURL,
	}
	client, err := storage.NewS3Client(ctx, s3cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("image uploads go to s3", zap.String("bucket", cfg.S3Bucket))
	return storage.NewS3ImageStore(client, s3cfg), nil
}
