package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"ticketresale/internal/domain"
)

// schemaLockKey identifies the advisory lock that serializes concurrent schema creation.
const schemaLockKey int64 = 0x7469636b6574 // "ticket"

// schemaStatements run in order inside one transaction. Every statement is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		date DATE NOT NULL,
		city VARCHAR(100) NOT NULL,
		zip_code VARCHAR(20),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sellers (
		id SERIAL PRIMARY KEY,
		event_id INTEGER NOT NULL REFERENCES events(id),
		name VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL CHECK (price > 0),
		city VARCHAR(100) NOT NULL,
		whatsapp VARCHAR(20) NOT NULL,
		tickets_available INTEGER NOT NULL DEFAULT 1 CHECK (tickets_available > 0),
		ticket_details TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	// Databases created before listings carried seat details lack this column.
	`ALTER TABLE sellers ADD COLUMN IF NOT EXISTS ticket_details TEXT`,
	`CREATE INDEX IF NOT EXISTS idx_events_date ON events (date)`,
	`CREATE INDEX IF NOT EXISTS idx_sellers_event_price ON sellers (event_id, price)`,
}

type schemaStore struct {
	DB *sql.DB
}

func NewSchemaStore(db *sql.DB) domain.SchemaStore {
	return &schemaStore{
		DB: db,
	}
}

// EnsureSchema creates the events and sellers tables if they are missing.
// Concurrent callers, in this process or another, queue on a transaction-scoped advisory lock,
// so nobody observes a half-created schema.
func (s *schemaStore) EnsureSchema(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ensure schema: begin: %w: %w", domain.ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, schemaLockKey); err != nil {
		return fmt.Errorf("ensure schema: lock: %w: %w", domain.ErrStorageUnavailable, err)
	}
	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w: %w", domain.ErrStorageUnavailable, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ensure schema: commit: %w: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// ListTables returns the table names in the public schema, sorted.
func ListTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' ORDER BY table_name`)
	if err != nil {
		return nil, translateError(ctx, "list tables", err, false)
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, translateError(ctx, "list tables", err, false)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(ctx, "list tables", err, false)
	}
	return tables, nil
}
