package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/folio/folio/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420420

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetDocumentsTable drops the given documents table so the next migrate
// starts from scratch.
func ResetDocumentsTable(ctx context.Context, pool *pgxpool.Pool, table string) error {
	query := "DROP TABLE IF EXISTS " + pq.QuoteIdentifier(table)
	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("drop %s: %w", table, err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestVisitor creates a visitor record seen once at firstVisit.
func NewTestVisitor(t testing.TB, id string, firstVisit time.Time) *model.VisitorRecord {
	t.Helper()
	return &model.VisitorRecord{
		ID:         id,
		FirstVisit: firstVisit.UTC(),
		Visits:     1,
	}
}

// NewTestContact creates a contact record submitted at ts.
func NewTestContact(t testing.TB, name string, ts time.Time) model.ContactRecord {
	t.Helper()
	return model.ContactRecord{
		ID:        ts.UnixMilli(),
		Name:      name,
		Email:     name + "@example.com",
		Message:   "hello from " + name,
		Timestamp: ts.UTC(),
	}
}

// Clock is a manually advanced time source for deterministic tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a Clock starting at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start.UTC()}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
