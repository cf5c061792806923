package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rl1809/cafe/internal/core/domain"
)

const orderColumns = `id, name, contact_number, email, delivery_method, table_number,
	delivery_address, total_amount, status, created_at`

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		o       domain.Order
		method  string
		status  string
		table   sql.NullInt64
		address sql.NullString
	)
	err := row.Scan(&o.ID, &o.CustomerName, &o.ContactNumber, &o.Email, &method, &table,
		&address, &o.TotalAmount, &status, &o.CreatedAt)
	o.DeliveryMethod = domain.DeliveryMethod(method)
	o.Status = domain.OrderStatus(status)
	o.TableNumber = int(table.Int64)
	o.DeliveryAddress = address.String
	return o, err
}

func (m *MySQLAdapter) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()

	var table sql.NullInt64
	var address sql.NullString
	if order.DeliveryMethod == domain.DeliveryMethodDineIn {
		table = sql.NullInt64{Int64: int64(order.TableNumber), Valid: true}
	} else {
		address = sql.NullString{String: order.DeliveryAddress, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, name, contact_number, email, delivery_method, table_number,
			delivery_address, total_amount, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, order.CustomerName, order.ContactNumber, order.Email, string(order.DeliveryMethod), table,
		address, order.TotalAmount, string(order.Status), order.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, li := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, line_no, menu_item_id, name, price, quantity)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, i, li.MenuItemID, li.Name, li.Price, li.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	order.ID = id
	return nil
}

func (m *MySQLAdapter) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := m.loadOrderItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadOrderItems fills Items for every order with a single query.
func (m *MySQLAdapter) loadOrderItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	index := make(map[string]int, len(orders))
	ids := make([]string, len(orders))
	for i, o := range orders {
		index[o.ID] = i
		ids[i] = o.ID
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT order_id, menu_item_id, name, price, quantity
		FROM order_items
		WHERE order_id IN (`+placeholders(len(ids))+`)
		ORDER BY order_id, line_no`, toArgs(ids)...)
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var li domain.LineItem
		if err := rows.Scan(&orderID, &li.MenuItemID, &li.Name, &li.Price, &li.Quantity); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		i := index[orderID]
		orders[i].Items = append(orders[i].Items, li)
	}
	return rows.Err()
}

func (m *MySQLAdapter) getOrder(ctx context.Context, id string) (*domain.Order, error) {
	o, err := scanOrder(m.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("Order", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	orders := []domain.Order{o}
	if err := m.loadOrderItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (m *MySQLAdapter) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	_, err := m.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	// A missing row surfaces here as NotFoundError.
	return m.getOrder(ctx, id)
}

func (m *MySQLAdapter) DeleteOrder(ctx context.Context, id string) error {
	result, err := m.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.NewNotFoundError("Order", id)
	}
	return nil
}
