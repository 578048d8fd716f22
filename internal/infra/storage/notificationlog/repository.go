package notificationlog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/pkg/dbexec"
	"github.com/gleamnails/GN-BookingService/pkg/psqlbuilder"
)

// Repository is the send log backing the sweep's at-most-once guarantee.
// A row per (booking, type) pair is claimed before the provider call; the
// primary key makes a second claim a no-op, so repeated or concurrent sweep
// runs can never double-send.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a notification log repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Claim records the intent to send. Returns false when the pair was already
// claimed by an earlier (or concurrent) sweep run.
func (r *Repository) Claim(ctx context.Context, bookingID string, kind domain.NotificationType) (bool, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notification_log").
		Columns("booking_id", "notification_type").
		Values(bookingID, kind).
		Suffix("ON CONFLICT (booking_id, notification_type) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Claim - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Claim - execute insert: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Claim - get rows affected: %v", ErrExecQuery, err)
	}
	return affected == 1, nil
}

// Release withdraws a claim after a failed provider call, leaving the pair
// eligible for a later sweep attempt within the same target window.
func (r *Repository) Release(ctx context.Context, bookingID string, kind domain.NotificationType) error {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("notification_log").
		Where(squirrel.Eq{"booking_id": bookingID}).
		Where(squirrel.Eq{"notification_type": kind}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}
