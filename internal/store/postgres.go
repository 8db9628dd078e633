package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// DefaultPostgresTable is the table used when none is configured.
const DefaultPostgresTable = "folio_documents"

// PostgresBackend keeps one JSONB row per kind.
type PostgresBackend struct {
	pool  *pgxpool.Pool
	table string // quoted identifier
}

// NewPostgresBackend opens a pool, verifies it and creates the table if missing.
func NewPostgresBackend(ctx context.Context, databaseURL, table string) (*PostgresBackend, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 4
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	b := NewPostgresBackendFromPool(pool, table)
	if err := b.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return b, nil
}

// NewPostgresBackendFromPool wraps an existing pool. The caller is
// responsible for the table existing.
func NewPostgresBackendFromPool(pool *pgxpool.Pool, table string) *PostgresBackend {
	if table == "" {
		table = DefaultPostgresTable
	}
	return &PostgresBackend{pool: pool, table: pq.QuoteIdentifier(table)}
}

func (b *PostgresBackend) migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			kind       TEXT PRIMARY KEY,
			body       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, b.table)

	if _, err := b.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

// Read returns the stored document for kind.
func (b *PostgresBackend) Read(ctx context.Context, kind Kind) ([]byte, error) {
	query := fmt.Sprintf(`SELECT body FROM %s WHERE kind = $1`, b.table)

	var body []byte
	err := b.pool.QueryRow(ctx, query, string(kind)).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", kind, ErrBlobNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", kind, err)
	}
	return body, nil
}

// Write upserts the document for kind.
func (b *PostgresBackend) Write(ctx context.Context, kind Kind, data []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (kind, body, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (kind) DO UPDATE
		SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`, b.table)

	if _, err := b.pool.Exec(ctx, query, string(kind), string(data)); err != nil {
		return fmt.Errorf("upsert %s: %w", kind, err)
	}
	return nil
}

// Exists reports whether a row for kind is present.
func (b *PostgresBackend) Exists(ctx context.Context, kind Kind) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE kind = $1)`, b.table)

	var exists bool
	if err := b.pool.QueryRow(ctx, query, string(kind)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s: %w", kind, err)
	}
	return exists, nil
}

// Ping checks database connectivity.
func (b *PostgresBackend) Ping(ctx context.Context) error {
	return b.pool.Ping(ctx)
}

// Close closes the connection pool.
func (b *PostgresBackend) Close() error {
	b.pool.Close()
	return nil
}
