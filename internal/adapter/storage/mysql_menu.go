package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rl1809/cafe/internal/core/domain"
)

const menuColumns = `id, name, description, price, category, image, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMenuItem(row rowScanner) (domain.MenuItem, error) {
	var it domain.MenuItem
	var category string
	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &category, &it.Image, &it.CreatedAt)
	it.Category = domain.Category(category)
	return it, err
}

func (m *MySQLAdapter) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT `+menuColumns+` FROM menu_items ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		it, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (m *MySQLAdapter) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	it, err := scanMenuItem(m.db.QueryRowContext(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("Menu item", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query menu item: %w", err)
	}
	return &it, nil
}

func (m *MySQLAdapter) GetMenuItems(ctx context.Context, ids []string) (map[string]domain.MenuItem, error) {
	out := make(map[string]domain.MenuItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := m.db.QueryContext(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE id IN (`+placeholders(len(ids))+`)`, toArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		it, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		out[it.ID] = it
	}
	return out, rows.Err()
}

func (m *MySQLAdapter) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	item.ID = uuid.NewString()
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO menu_items (id, name, description, price, category, image, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Description, item.Price, string(item.Category), item.Image, item.CreatedAt.UTC(),
	)
	if isDuplicateEntry(err) {
		return domain.NewValidationError("name", fmt.Sprintf("Menu item %q already exists.", item.Name))
	}
	if err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) UpdateMenuItem(ctx context.Context, item domain.MenuItem) error {
	result, err := m.db.ExecContext(ctx, `
		UPDATE menu_items
		SET name = ?, description = ?, price = ?, category = ?, image = ?
		WHERE id = ?`,
		item.Name, item.Description, item.Price, string(item.Category), item.Image, item.ID,
	)
	if isDuplicateEntry(err) {
		return domain.NewValidationError("name", fmt.Sprintf("Menu item %q already exists.", item.Name))
	}
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		ok, err := m.exists(ctx, "menu_items", item.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewNotFoundError("Menu item", item.ID)
		}
	}
	return nil
}

func (m *MySQLAdapter) DeleteMenuItem(ctx context.Context, id string) error {
	result, err := m.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.NewNotFoundError("Menu item", id)
	}
	return nil
}
