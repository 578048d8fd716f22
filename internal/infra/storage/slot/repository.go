package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/pkg/dbexec"
	"github.com/gleamnails/GN-BookingService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var slotColumns = []string{
	"id",
	"date",
	"start_time",
	"status",
	"slot_type",
	"nail_tech_id",
	"is_hidden",
	"notes",
	"created_at",
	"updated_at",
}

// Repository persists time slots.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a slot repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch inserts a set of slots in one statement. Used by the admin
// bulk-seeding flow.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}
	executor := dbexec.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert("slots").
		Columns("id", "date", "start_time", "status", "slot_type", "nail_tech_id", "is_hidden", "notes")
	for _, s := range slots {
		insert = insert.Values(s.ID, s.Date, s.StartTime, s.Status, s.SlotType, s.NailTechID, s.IsHidden, s.Notes)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return fmt.Errorf("%w: CreateBatch: %v", ErrDuplicateSlot, err)
		}
		return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// GetByID fetches one slot.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}
	return s, nil
}

// GetByIDs fetches several slots, ordered by date and start time. When run
// inside a managed transaction the rows are locked with FOR UPDATE, so the
// caller's subsequent conditional transition cannot race a concurrent claim.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Slot, error) {
	if len(ids) == 0 {
		return []*domain.Slot{}, nil
	}
	executor := dbexec.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("date ASC, start_time ASC")

	if dbexec.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListByRange returns a technician's slots within [From, To].
func (r *Repository) ListByRange(ctx context.Context, filter domain.SlotRangeFilter) ([]*domain.Slot, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"nail_tech_id": filter.NailTechID}).
		Where(squirrel.GtOrEq{"date": filter.From}).
		Where(squirrel.LtOrEq{"date": filter.To}).
		OrderBy("date ASC, start_time ASC")

	if !filter.IncludeHidden {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_hidden": false})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// TransitionStatus flips every listed slot from one status to another in a
// single conditional statement. The WHERE clause re-checks the current
// status, so a check-then-act gap cannot double-book: when any slot is no
// longer in the expected state the statement affects fewer rows than
// requested and ErrSlotConflict is returned. Callers run this inside a
// transaction and roll back on conflict.
func (r *Repository) TransitionStatus(ctx context.Context, ids []string, nailTechID string, from, to domain.SlotStatus) error {
	if len(ids) == 0 {
		return nil
	}
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"nail_tech_id": nailTechID}).
		Where(squirrel.Eq{"status": from}).
		Where(squirrel.Eq{"is_hidden": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if affected != int64(len(ids)) {
		return ErrSlotConflict
	}
	return nil
}

// Release returns slots to the available state unconditionally. Used on
// cancellation and on the release half of a reschedule.
func (r *Repository) Release(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotAvailable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}
	return nil
}

// Update rewrites the admin-editable fields of one slot.
func (r *Repository) Update(ctx context.Context, s *domain.Slot) error {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", s.Status).
		Set("slot_type", s.SlotType).
		Set("is_hidden", s.IsHidden).
		Set("notes", s.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var s domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.Date,
		&s.StartTime,
		&s.Status,
		&s.SlotType,
		&s.NailTechID,
		&s.IsHidden,
		&s.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}

func scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}
	return slots, nil
}
