// Package ratelimit is a fixed-window request counter kept in Postgres, so
// the limit holds across every instance of the service rather than per
// process.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gleamnails/GN-BookingService/pkg/dbexec"
)

var (
	// ErrExecQuery is returned when the SQL query fails to execute
	ErrExecQuery = errors.New("ratelimit.repository: failed to execute query")
)

// Repository counts hits per key in expiring windows.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a rate-limit repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Hit registers one request for key and returns the count within the current
// window. A stale row (expired window) restarts at 1, so the table never
// needs a separate cleanup pass for correctness.
func (r *Repository) Hit(ctx context.Context, key string, window time.Duration) (int, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	const query = `
		INSERT INTO rate_limits (key, hits, window_expires_at)
		VALUES ($1, 1, NOW() + $2::interval)
		ON CONFLICT (key) DO UPDATE SET
			hits = CASE WHEN rate_limits.window_expires_at < NOW() THEN 1 ELSE rate_limits.hits + 1 END,
			window_expires_at = CASE WHEN rate_limits.window_expires_at < NOW() THEN NOW() + $2::interval ELSE rate_limits.window_expires_at END
		RETURNING hits`

	interval := fmt.Sprintf("%d seconds", int(window.Seconds()))
	var hits int
	if err := executor.QueryRowContext(ctx, query, key, interval).Scan(&hits); err != nil {
		return 0, fmt.Errorf("%w: Hit - execute upsert: %v", ErrExecQuery, err)
	}
	return hits, nil
}

// PruneExpired deletes stale windows. Housekeeping only; invoked from the
// sweep schedule.
func (r *Repository) PruneExpired(ctx context.Context) (int64, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, `DELETE FROM rate_limits WHERE window_expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("%w: PruneExpired - execute delete: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PruneExpired - get rows affected: %v", ErrExecQuery, err)
	}
	return affected, nil
}
