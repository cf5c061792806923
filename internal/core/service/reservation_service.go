package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/cafe/internal/core/domain"
	"github.com/rl1809/cafe/internal/port"
)

type ReservationService struct {
	reservations port.ReservationRepository
	logger       *zap.Logger
	now          func() time.Time
}

func NewReservationService(reservations port.ReservationRepository, logger *zap.Logger) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *ReservationService) CreateReservation(ctx context.Context, in domain.ReservationInput) (*domain.Reservation, error) {
	r, err := domain.NewReservation(in, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.reservations.CreateReservation(ctx, r); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.logger.Info("reservation created",
		zap.String("reservation_id", r.ID),
		zap.Int("party_size", r.PartySize))
	return r, nil
}

func (s *ReservationService) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	rs, err := s.reservations.ListReservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return rs, nil
}

func (s *ReservationService) UpdateReservation(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error) {
	if id == "" {
		return nil, domain.NewValidationError("_id", "Reservation ID is required for updating.")
	}

	r, err := s.reservations.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.Apply(patch); err != nil {
		return nil, err
	}

	if err := s.reservations.UpdateReservation(ctx, *r); err != nil {
		return nil, fmt.Errorf("update reservation: %w", err)
	}

	s.logger.Info("reservation updated",
		zap.String("reservation_id", id),
		zap.String("status", string(r.Status)))
	return r, nil
}

func (s *ReservationService) DeleteReservation(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewValidationError("_id", "Reservation ID is required for deletion.")
	}

	if err := s.reservations.DeleteReservation(ctx, id); err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}

	s.logger.Info("reservation deleted", zap.String("reservation_id", id))
	return nil
}
