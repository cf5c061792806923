package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

const mysqlErrDuplicateEntry = 1062

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS menu_items (
		id          CHAR(36)      NOT NULL PRIMARY KEY,
		name        VARCHAR(50)   NOT NULL,
		description VARCHAR(200)  NOT NULL,
		price       DECIMAL(10,2) NOT NULL,
		category    VARCHAR(32)   NOT NULL,
		image       VARCHAR(2048) NOT NULL DEFAULT '',
		created_at  DATETIME(3)   NOT NULL,
		UNIQUE KEY uq_menu_items_name (name)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id               CHAR(36)      NOT NULL PRIMARY KEY,
		name             VARCHAR(255)  NOT NULL,
		contact_number   VARCHAR(64)   NOT NULL,
		email            VARCHAR(255)  NOT NULL,
		delivery_method  VARCHAR(16)   NOT NULL,
		table_number     INT           NULL,
		delivery_address VARCHAR(512)  NULL,
		total_amount     DECIMAL(12,2) NOT NULL,
		status           VARCHAR(32)   NOT NULL,
		created_at       DATETIME(3)   NOT NULL,
		KEY idx_orders_created_at (created_at)
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_id     CHAR(36)      NOT NULL,
		line_no      INT           NOT NULL,
		menu_item_id CHAR(36)      NOT NULL,
		name         VARCHAR(50)   NOT NULL,
		price        DECIMAL(10,2) NOT NULL,
		quantity     INT           NOT NULL,
		PRIMARY KEY (order_id, line_no),
		CONSTRAINT fk_order_items_order FOREIGN KEY (order_id) REFERENCES orders (id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id               CHAR(36)     NOT NULL PRIMARY KEY,
		name             VARCHAR(255) NOT NULL,
		party_size       INT          NOT NULL,
		contact_number   VARCHAR(64)  NOT NULL,
		email            VARCHAR(255) NOT NULL,
		reservation_date DATE         NOT NULL,
		reservation_time VARCHAR(16)  NOT NULL,
		table_label      VARCHAR(32)  NOT NULL DEFAULT '',
		notes            TEXT         NOT NULL,
		status           VARCHAR(16)  NOT NULL,
		created_at       DATETIME(3)  NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id         CHAR(36)     NOT NULL PRIMARY KEY,
		name       VARCHAR(255) NOT NULL,
		email      VARCHAR(255) NOT NULL,
		message    TEXT         NOT NULL,
		created_at DATETIME(3)  NOT NULL,
		updated_at DATETIME(3)  NOT NULL
	)`,
}

// MySQLAdapter implements the menu, order, reservation and contact
// repositories on MySQL. The DSN must set parseTime=true.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// Migrate creates any missing tables.
func (m *MySQLAdapter) Migrate(ctx context.Context) error {
	for _, stmt := range mysqlSchema {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// exists reports whether a row with the id is present. MySQL counts only
// changed rows in RowsAffected, so a zero-row UPDATE is ambiguous on its own.
func (m *MySQLAdapter) exists(ctx context.Context, table, id string) (bool, error) {
	var one int
	err := m.db.QueryRowContext(ctx, `SELECT 1 FROM `+table+` WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query %s: %w", table, err)
	}
	return true, nil
}

func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
