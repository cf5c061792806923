package port

import (
	"context"

	"github.com/rl1809/cafe/internal/core/domain"
)

type OrderRepository interface {
	// CreateOrder persists a new order with its line snapshots and assigns its ID
	CreateOrder(ctx context.Context, order *domain.Order) error

	// ListOrders returns every order, newest first
	ListOrders(ctx context.Context) ([]domain.Order, error)

	// UpdateOrderStatus overwrites the status and returns the updated order
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)

	DeleteOrder(ctx context.Context, id string) error
}
