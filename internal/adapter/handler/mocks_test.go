package handler

import (
	"context"
	"errors"
	"io"
	"strconv"
	"sync"

	"github.com/rl1809/cafe/internal/core/domain"
)

// memStore implements the four repositories in memory.
type memStore struct {
	mu           sync.Mutex
	nextID       int
	menu         map[string]domain.MenuItem
	orders       []domain.Order
	reservations map[string]domain.Reservation
	contacts     map[string]domain.ContactMessage
}

func newMemStore(items ...domain.MenuItem) *memStore {
	s := &memStore{
		menu:         make(map[string]domain.MenuItem),
		reservations: make(map[string]domain.Reservation),
		contacts:     make(map[string]domain.ContactMessage),
	}
	for _, it := range items {
		s.menu[it.ID] = it
	}
	return s
}

func (s *memStore) id(prefix string) string {
	s.nextID++
	return prefix + strconv.Itoa(s.nextID)
}

func (s *memStore) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.MenuItem, 0, len(s.menu))
	for _, it := range s.menu {
		out = append(out, it)
	}
	return out, nil
}

func (s *memStore) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.menu[id]
	if !ok {
		return nil, domain.NewNotFoundError("Menu item", id)
	}
	return &it, nil
}

func (s *memStore) GetMenuItems(ctx context.Context, ids []string) (map[string]domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]domain.MenuItem)
	for _, id := range ids {
		if it, ok := s.menu[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

func (s *memStore) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.id("menu-")
	s.menu[item.ID] = *item
	return nil
}

func (s *memStore) UpdateMenuItem(ctx context.Context, item domain.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menu[item.ID]; !ok {
		return domain.NewNotFoundError("Menu item", item.ID)
	}
	s.menu[item.ID] = item
	return nil
}

func (s *memStore) DeleteMenuItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menu[id]; !ok {
		return domain.NewNotFoundError("Menu item", id)
	}
	delete(s.menu, id)
	return nil
}

func (s *memStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = s.id("order-")
	s.orders = append(s.orders, *order)
	return nil
}

func (s *memStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Order, 0, len(s.orders))
	for i := len(s.orders) - 1; i >= 0; i-- {
		out = append(out, s.orders[i])
	}
	return out, nil
}

func (s *memStore) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			o := s.orders[i]
			return &o, nil
		}
	}
	return nil, domain.NewNotFoundError("Order", id)
}

func (s *memStore) DeleteOrder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFoundError("Order", id)
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *memStore) CreateReservation(ctx context.Context, r *domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.id("res-")
	s.reservations[r.ID] = *r
	return nil
}

func (s *memStore) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		out = append(out, r)
	}
	return out, nil
}

func (s *memStore) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[id]
	if !ok {
		return nil, domain.NewNotFoundError("Reservation", id)
	}
	return &r, nil
}

func (s *memStore) UpdateReservation(ctx context.Context, r domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reservations[r.ID]; !ok {
		return domain.NewNotFoundError("Reservation", r.ID)
	}
	s.reservations[r.ID] = r
	return nil
}

func (s *memStore) DeleteReservation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reservations[id]; !ok {
		return domain.NewNotFoundError("Reservation", id)
	}
	delete(s.reservations, id)
	return nil
}

func (s *memStore) CreateContactMessage(ctx context.Context, m *domain.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.id("contact-")
	s.contacts[m.ID] = *m
	return nil
}

func (s *memStore) ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ContactMessage, 0, len(s.contacts))
	for _, m := range s.contacts {
		out = append(out, m)
	}
	return out, nil
}

func (s *memStore) GetContactMessage(ctx context.Context, id string) (*domain.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.contacts[id]
	if !ok {
		return nil, domain.NewNotFoundError("Contact message", id)
	}
	return &m, nil
}

func (s *memStore) UpdateContactMessage(ctx context.Context, m domain.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[m.ID]; !ok {
		return domain.NewNotFoundError("Contact message", m.ID)
	}
	s.contacts[m.ID] = m
	return nil
}

func (s *memStore) DeleteContactMessage(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[id]; !ok {
		return domain.NewNotFoundError("Contact message", id)
	}
	delete(s.contacts, id)
	return nil
}

// Mock IdempotencyStore
type mockIdempotency struct {
	mu       sync.Mutex
	keys     map[string]bool
	released []string
}

func newMockIdempotency() *mockIdempotency {
	return &mockIdempotency{keys: make(map[string]bool)}
}

func (m *mockIdempotency) ClaimIdempotencyKey(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.keys[key] {
		return false, nil
	}
	m.keys[key] = true
	return true, nil
}

func (m *mockIdempotency) ReleaseIdempotencyKey(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.keys, key)
	m.released = append(m.released, key)
	return nil
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

// Mock ImageStore
type mockImageStore struct {
	filename string
	body     string
}

func (m *mockImageStore) UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.filename = filename
	m.body = string(b)
	return "https://cdn.test/menu/" + filename, nil
}
