package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rl1809/cafe/internal/core/domain"
)

const reservationColumns = `id, name, party_size, contact_number, email, reservation_date,
	reservation_time, table_label, notes, status, created_at`

func scanReservation(row rowScanner) (domain.Reservation, error) {
	var r domain.Reservation
	var status string
	err := row.Scan(&r.ID, &r.Name, &r.PartySize, &r.ContactNumber, &r.Email, &r.Date,
		&r.Time, &r.Table, &r.Notes, &status, &r.CreatedAt)
	r.Status = domain.ReservationStatus(status)
	return r, err
}

func (m *MySQLAdapter) CreateReservation(ctx context.Context, r *domain.Reservation) error {
	r.ID = uuid.NewString()
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO reservations (id, name, party_size, contact_number, email, reservation_date,
			reservation_time, table_label, notes, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.PartySize, r.ContactNumber, r.Email, r.Date,
		r.Time, r.Table, r.Notes, string(r.Status), r.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT `+reservationColumns+` FROM reservations
		ORDER BY reservation_date, reservation_time`)
	if err != nil {
		return nil, fmt.Errorf("query reservations: %w", err)
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	r, err := scanReservation(m.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("Reservation", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query reservation: %w", err)
	}
	return &r, nil
}

func (m *MySQLAdapter) UpdateReservation(ctx context.Context, r domain.Reservation) error {
	result, err := m.db.ExecContext(ctx, `
		UPDATE reservations
		SET name = ?, party_size = ?, contact_number = ?, email = ?, reservation_date = ?,
			reservation_time = ?, table_label = ?, notes = ?, status = ?
		WHERE id = ?`,
		r.Name, r.PartySize, r.ContactNumber, r.Email, r.Date,
		r.Time, r.Table, r.Notes, string(r.Status), r.ID,
	)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		ok, err := m.exists(ctx, "reservations", r.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewNotFoundError("Reservation", r.ID)
		}
	}
	return nil
}

func (m *MySQLAdapter) DeleteReservation(ctx context.Context, id string) error {
	result, err := m.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.NewNotFoundError("Reservation", id)
	}
	return nil
}
