package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rl1809/cafe/internal/core/domain"
	"github.com/rl1809/cafe/internal/port"
)

type OrderService struct {
	menu       port.MenuRepository
	orders     port.OrderRepository
	eventQueue chan domain.OrderEvent
	logger     *zap.Logger
	now        func() time.Time
}

func NewOrderService(menu port.MenuRepository, orders port.OrderRepository, logger *zap.Logger, queueSize int) *OrderService {
	return &OrderService{
		menu:       menu,
		orders:     orders,
		eventQueue: make(chan domain.OrderEvent, queueSize),
		logger:     logger,
		now:        time.Now,
	}
}

// PlaceOrder prices every requested line from the catalog and stores the
// order as Pending. Prices sent by the client are never consulted. The
// catalog reads and the order write are not transactional: a menu item
// repriced in between is recorded at the price that was read.
func (s *OrderService) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	req.Normalize()
	if err := domain.ValidateOrderRequest(req); err != nil {
		return nil, err
	}

	items := make([]domain.LineItem, 0, len(req.Lines))
	total := decimal.Zero
	for _, line := range req.Lines {
		item, err := s.menu.GetMenuItem(ctx, line.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("resolve menu item %s: %w", line.MenuItemID, err)
		}

		li := domain.LineItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   line.Quantity,
		}
		items = append(items, li)
		total = total.Add(li.Total())
	}

	order := &domain.Order{
		CustomerName:   req.CustomerName,
		ContactNumber:  req.ContactNumber,
		Email:          req.Email,
		DeliveryMethod: req.DeliveryMethod,
		Items:          items,
		TotalAmount:    total,
		Status:         domain.OrderStatusPending,
		CreatedAt:      s.now(),
	}
	if req.DeliveryMethod == domain.DeliveryMethodDineIn {
		order.TableNumber = req.TableNumber
	} else {
		order.DeliveryAddress = req.DeliveryAddress
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("delivery_method", string(order.DeliveryMethod)),
		zap.Int("lines", len(order.Items)),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)))

	return order, nil
}

// ListOrders joins every stored line with the menu item as it is now, for
// display only. The stored snapshot is returned untouched alongside it.
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.OrderView, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	seen := make(map[string]struct{})
	var ids []string
	for _, o := range orders {
		for _, li := range o.Items {
			if _, ok := seen[li.MenuItemID]; ok {
				continue
			}
			seen[li.MenuItemID] = struct{}{}
			ids = append(ids, li.MenuItemID)
		}
	}

	current := map[string]domain.MenuItem{}
	if len(ids) > 0 {
		current, err = s.menu.GetMenuItems(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve menu items: %w", err)
		}
	}

	views := make([]domain.OrderView, 0, len(orders))
	for _, o := range orders {
		lines := make([]domain.LineItemView, 0, len(o.Items))
		for _, li := range o.Items {
			view := domain.LineItemView{LineItem: li}
			if item, ok := current[li.MenuItemID]; ok {
				view.Current = &item
			}
			lines = append(lines, view)
		}
		views = append(views, domain.OrderView{Order: o, Lines: lines})
	}

	return views, nil
}

// UpdateStatus overwrites the order status. Any of the six statuses may
// replace any other; there is no transition table.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if orderID == "" {
		return nil, domain.NewValidationError("_id", "Order ID is required for updating.")
	}
	if !status.Valid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("%q is not a valid order status.", status))
	}

	order, err := s.orders.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, fmt.Errorf("update order %s: %w", orderID, err)
	}

	s.logger.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("status", string(status)))

	s.enqueue(domain.OrderEvent{
		Type:       domain.OrderEventStatusChanged,
		OrderID:    orderID,
		Status:     status,
		OccurredAt: s.now(),
	})

	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return domain.NewValidationError("_id", "Order ID is required for deletion.")
	}

	if err := s.orders.DeleteOrder(ctx, orderID); err != nil {
		return fmt.Errorf("delete order %s: %w", orderID, err)
	}

	s.logger.Info("order deleted", zap.String("order_id", orderID))

	s.enqueue(domain.OrderEvent{
		Type:       domain.OrderEventDeleted,
		OrderID:    orderID,
		OccurredAt: s.now(),
	})

	return nil
}

// enqueue hands the event to the publisher workers without blocking the
// request; events are dropped when the queue is full.
func (s *OrderService) enqueue(event domain.OrderEvent) {
	select {
	case s.eventQueue <- event:
	default:
		s.logger.Warn("order event queue full, dropping event",
			zap.String("order_id", event.OrderID),
			zap.String("event", string(event.Type)))
	}
}

func (s *OrderService) GetEventQueue() <-chan domain.OrderEvent {
	return s.eventQueue
}

func (s *OrderService) Close() {
	close(s.eventQueue)
}
