package port

import (
	"context"

	"github.com/rl1809/cafe/internal/core/domain"
)

type ReservationRepository interface {
	CreateReservation(ctx context.Context, r *domain.Reservation) error

	// ListReservations returns reservations sorted by date, then time
	ListReservations(ctx context.Context) ([]domain.Reservation, error)

	GetReservation(ctx context.Context, id string) (*domain.Reservation, error)

	UpdateReservation(ctx context.Context, r domain.Reservation) error

	DeleteReservation(ctx context.Context, id string) error
}
