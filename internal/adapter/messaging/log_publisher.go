package messaging

import (
	"context"

	"go.uber.org/zap"

	"github.com/rl1809/cafe/internal/core/domain"
)

// LogPublisher records order events in the log when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishOrderEvent(_ context.Context, event domain.OrderEvent) error {
	p.logger.Info("order event",
		zap.String("routing_key", routingKey(event)),
		zap.String("order_id", event.OrderID),
		zap.String("status", string(event.Status)),
		zap.Time("occurred_at", event.OccurredAt))
	return nil
}
