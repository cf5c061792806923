package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/cafe/internal/core/domain"
	"github.com/rl1809/cafe/internal/port"
)

const publishTimeout = 5 * time.Second

// RunEventWorker publishes queued order events until the queue is closed.
// Publish failures are logged and the event is dropped.
func RunEventWorker(id int, queue <-chan domain.OrderEvent, publisher port.EventPublisher, logger *zap.Logger) {
	for event := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)

		if err := publisher.PublishOrderEvent(ctx, event); err != nil {
			logger.Error("failed to publish order event",
				zap.Int("worker", id),
				zap.String("order_id", event.OrderID),
				zap.String("event", string(event.Type)),
				zap.Error(err))
		} else {
			logger.Debug("published order event",
				zap.Int("worker", id),
				zap.String("order_id", event.OrderID),
				zap.String("event", string(event.Type)))
		}

		cancel()
	}
}
