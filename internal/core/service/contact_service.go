package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/cafe/internal/core/domain"
	"github.com/rl1809/cafe/internal/port"
)

type ContactService struct {
	contacts port.ContactRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewContactService(contacts port.ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{
		contacts: contacts,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *ContactService) SubmitMessage(ctx context.Context, in domain.ContactInput) (*domain.ContactMessage, error) {
	m, err := domain.NewContactMessage(in, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.contacts.CreateContactMessage(ctx, m); err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}

	s.logger.Info("contact message received", zap.String("contact_id", m.ID))
	return m, nil
}

func (s *ContactService) ListMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	ms, err := s.contacts.ListContactMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return ms, nil
}

func (s *ContactService) UpdateMessage(ctx context.Context, id string, patch domain.ContactPatch) (*domain.ContactMessage, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "Contact ID is required")
	}

	m, err := s.contacts.GetContactMessage(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := m.Apply(patch, s.now()); err != nil {
		return nil, err
	}

	if err := s.contacts.UpdateContactMessage(ctx, *m); err != nil {
		return nil, fmt.Errorf("update contact message: %w", err)
	}
	return m, nil
}

func (s *ContactService) DeleteMessage(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewValidationError("id", "Contact ID is required")
	}

	if err := s.contacts.DeleteContactMessage(ctx, id); err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}

	s.logger.Info("contact message deleted", zap.String("contact_id", id))
	return nil
}
