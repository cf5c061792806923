package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"

	"github.com/rl1809/cafe/internal/core/domain"
)

// Mock MenuRepository
type mockMenuRepo struct {
	mu     sync.Mutex
	items  map[string]domain.MenuItem
	nextID int
	reads  int
}

func newMockMenuRepo(items ...domain.MenuItem) *mockMenuRepo {
	m := &mockMenuRepo{items: make(map[string]domain.MenuItem)}
	for _, it := range items {
		m.items[it.ID] = it
	}
	return m
}

func (m *mockMenuRepo) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.MenuItem, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *mockMenuRepo) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++
	it, ok := m.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Menu item", id)
	}
	return &it, nil
}

func (m *mockMenuRepo) GetMenuItems(ctx context.Context, ids []string) (map[string]domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]domain.MenuItem)
	for _, id := range ids {
		if it, ok := m.items[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

func (m *mockMenuRepo) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, it := range m.items {
		if it.Name == item.Name {
			return domain.NewValidationError("name", "Menu item name already exists.")
		}
	}
	m.nextID++
	item.ID = "menu-" + strconv.Itoa(m.nextID)
	m.items[item.ID] = *item
	return nil
}

func (m *mockMenuRepo) UpdateMenuItem(ctx context.Context, item domain.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[item.ID]; !ok {
		return domain.NewNotFoundError("Menu item", item.ID)
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockMenuRepo) DeleteMenuItem(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return domain.NewNotFoundError("Menu item", id)
	}
	delete(m.items, id)
	return nil
}

// Mock OrderRepository
type mockOrderRepo struct {
	mu      sync.Mutex
	orders  []domain.Order
	nextID  int
	failErr error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{}
}

func (m *mockOrderRepo) CreateOrder(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return m.failErr
	}
	m.nextID++
	order.ID = "order-" + strconv.Itoa(m.nextID)
	stored := *order
	stored.Items = append([]domain.LineItem(nil), order.Items...)
	m.orders = append(m.orders, stored)
	return nil
}

func (m *mockOrderRepo) ListOrders(ctx context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Order, 0, len(m.orders))
	for i := len(m.orders) - 1; i >= 0; i-- {
		out = append(out, m.orders[i])
	}
	return out, nil
}

func (m *mockOrderRepo) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			o := m.orders[i]
			return &o, nil
		}
	}
	return nil, domain.NewNotFoundError("Order", id)
}

func (m *mockOrderRepo) DeleteOrder(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFoundError("Order", id)
}

func (m *mockOrderRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

// Mock EventPublisher
type mockPublisher struct {
	mu     sync.Mutex
	events []domain.OrderEvent
	err    error
}

func (m *mockPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)
	return m.err
}

// Mock TokenIssuer
type mockTokens struct{}

func (mockTokens) IssueToken(email string) (string, error) {
	return "token:" + email, nil
}

func (mockTokens) VerifyToken(token string) (string, error) {
	if len(token) > 6 && token[:6] == "token:" {
		return token[6:], nil
	}
	return "", errors.New("bad token")
}
