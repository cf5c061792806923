package port

import (
	"context"

	"github.com/rl1809/cafe/internal/core/domain"
)

type ContactRepository interface {
	CreateContactMessage(ctx context.Context, m *domain.ContactMessage) error

	// ListContactMessages returns messages newest first
	ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error)

	GetContactMessage(ctx context.Context, id string) (*domain.ContactMessage, error)

	UpdateContactMessage(ctx context.Context, m domain.ContactMessage) error

	DeleteContactMessage(ctx context.Context, id string) error
}
