package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"go.uber.org/zap"

	"github.com/rl1809/cafe/internal/core/domain"
)

// Mock ContactRepository
type mockContactRepo struct {
	items  map[string]domain.ContactMessage
	nextID int
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{items: make(map[string]domain.ContactMessage)}
}

func (m *mockContactRepo) CreateContactMessage(ctx context.Context, c *domain.ContactMessage) error {
	m.nextID++
	c.ID = "contact-" + strconv.Itoa(m.nextID)
	m.items[c.ID] = *c
	return nil
}

func (m *mockContactRepo) ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	out := make([]domain.ContactMessage, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockContactRepo) GetContactMessage(ctx context.Context, id string) (*domain.ContactMessage, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Contact", id)
	}
	return &c, nil
}

func (m *mockContactRepo) UpdateContactMessage(ctx context.Context, c domain.ContactMessage) error {
	if _, ok := m.items[c.ID]; !ok {
		return domain.NewNotFoundError("Contact", c.ID)
	}
	m.items[c.ID] = c
	return nil
}

func (m *mockContactRepo) DeleteContactMessage(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return domain.NewNotFoundError("Contact", id)
	}
	delete(m.items, id)
	return nil
}

func TestSubmitMessage(t *testing.T) {
	repo := newMockContactRepo()
	svc := NewContactService(repo, zap.NewNop())

	m, err := svc.SubmitMessage(context.Background(), domain.ContactInput{
		Name:    "Linus",
		Email:   "LINUS@example.org",
		Message: "Do you have oat milk?",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if m.Email != "linus@example.org" {
		t.Errorf("expected lower-cased email, got %q", m.Email)
	}
	if len(repo.items) != 1 {
		t.Errorf("expected 1 stored message, got %d", len(repo.items))
	}
}

func TestSubmitMessage_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   domain.ContactInput
		msg  string
	}{
		{"short name", domain.ContactInput{Name: "L", Email: "l@example.org", Message: "hello there"}, "Name must be at least 2 characters long"},
		{"bad email", domain.ContactInput{Name: "Linus", Email: "not-an-email", Message: "hello there"}, "Please use a valid email address"},
		{"short message", domain.ContactInput{Name: "Linus", Email: "l@example.org", Message: "hi"}, "Message must be at least 5 characters long"},
		{"missing message", domain.ContactInput{Name: "Linus", Email: "l@example.org"}, "Message is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewContactService(newMockContactRepo(), zap.NewNop())
			_, err := svc.SubmitMessage(context.Background(), tt.in)

			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got: %v", err)
			}
			if verr.Message != tt.msg {
				t.Errorf("expected %q, got %q", tt.msg, verr.Message)
			}
		})
	}
}

func TestUpdateAndDeleteMessage(t *testing.T) {
	repo := newMockContactRepo()
	svc := NewContactService(repo, zap.NewNop())
	ctx := context.Background()

	m, err := svc.SubmitMessage(ctx, domain.ContactInput{Name: "Linus", Email: "l@example.org", Message: "hello there"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	msg := "hello again"
	updated, err := svc.UpdateMessage(ctx, m.ID, domain.ContactPatch{Message: &msg})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Message != "hello again" || updated.Name != "Linus" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	if err := svc.DeleteMessage(ctx, m.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.UpdateMessage(ctx, m.ID, domain.ContactPatch{Message: &msg}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got: %v", err)
	}
}
