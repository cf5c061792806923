package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rl1809/cafe/internal/core/domain"
)

const contactColumns = `id, name, email, message, created_at, updated_at`

func scanContact(row rowScanner) (domain.ContactMessage, error) {
	var c domain.ContactMessage
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (m *MySQLAdapter) CreateContactMessage(ctx context.Context, c *domain.ContactMessage) error {
	c.ID = uuid.NewString()
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO contacts (id, name, email, message, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Message, c.CreatedAt.UTC(), c.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query contact messages: %w", err)
	}
	defer rows.Close()

	var out []domain.ContactMessage
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) GetContactMessage(ctx context.Context, id string) (*domain.ContactMessage, error) {
	c, err := scanContact(m.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("Contact message", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query contact message: %w", err)
	}
	return &c, nil
}

func (m *MySQLAdapter) UpdateContactMessage(ctx context.Context, c domain.ContactMessage) error {
	result, err := m.db.ExecContext(ctx, `
		UPDATE contacts SET name = ?, email = ?, message = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Email, c.Message, c.UpdatedAt.UTC(), c.ID,
	)
	if err != nil {
		return fmt.Errorf("update contact message: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		ok, err := m.exists(ctx, "contacts", c.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewNotFoundError("Contact message", c.ID)
		}
	}
	return nil
}

func (m *MySQLAdapter) DeleteContactMessage(ctx context.Context, id string) error {
	result, err := m.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.NewNotFoundError("Contact message", id)
	}
	return nil
}
