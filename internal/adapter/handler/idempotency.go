package handler

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/rl1809/cafe/internal/core/domain"
	"github.com/rl1809/cafe/internal/port"
)

var ErrDuplicateRequest = errors.New("duplicate request")

// placeOnce runs place under an idempotency key. The key is claimed first
// and released again when place fails, so a failed request can be retried.
// An empty key or a nil store runs place directly.
func placeOnce(ctx context.Context, store port.IdempotencyStore, key string, logger *zap.Logger,
	place func() (*domain.Order, error)) (*domain.Order, error) {
	if key == "" || store == nil {
		return place()
	}

	ok, err := store.ClaimIdempotencyKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDuplicateRequest
	}

	order, err := place()
	if err != nil {
		if rerr := store.ReleaseIdempotencyKey(ctx, key); rerr != nil {
			logger.Warn("failed to release idempotency key",
				zap.String("idempotency_key", key),
				zap.Error(rerr))
		}
		return nil, err
	}
	return order, nil
}
