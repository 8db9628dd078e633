package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso / libSQL driver
	_ "modernc.org/sqlite"                               // Local SQLite driver
)

// SQLiteBackend keeps one row per kind in a documents table. Local files use
// modernc.org/sqlite; libsql:// and wss:// URLs go through the libSQL client.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend opens dsn and creates the documents table if missing.
func NewSQLiteBackend(ctx context.Context, dsn string) (*SQLiteBackend, error) {
	driverName := "sqlite"
	if strings.HasPrefix(dsn, "libsql://") || strings.HasPrefix(dsn, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driverName, err)
	}
	if driverName == "sqlite" {
		// One writer at a time; avoids SQLITE_BUSY on a local file.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	b := &SQLiteBackend{db: db}
	if err := b.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return b, nil
}

func (b *SQLiteBackend) migrate(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS documents (
		kind TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := b.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

// Read returns the stored document for kind.
func (b *SQLiteBackend) Read(ctx context.Context, kind Kind) ([]byte, error) {
	var body string
	err := b.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE kind = ?`, string(kind)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", kind, ErrBlobNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", kind, err)
	}
	return []byte(body), nil
}

// Write upserts the document for kind.
func (b *SQLiteBackend) Write(ctx context.Context, kind Kind, data []byte) error {
	query := `
	INSERT INTO documents (kind, body, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(kind) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`

	if _, err := b.db.ExecContext(ctx, query, string(kind), string(data)); err != nil {
		return fmt.Errorf("upsert %s: %w", kind, err)
	}
	return nil
}

// Exists reports whether a row for kind is present.
func (b *SQLiteBackend) Exists(ctx context.Context, kind Kind) (bool, error) {
	var n int
	err := b.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM documents WHERE kind = ?`, string(kind)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", kind, err)
	}
	return n > 0, nil
}

// Ping checks database connectivity.
func (b *SQLiteBackend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

// Close closes the database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
