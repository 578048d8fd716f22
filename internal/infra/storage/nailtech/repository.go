package nailtech

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/pkg/dbexec"
	"github.com/gleamnails/GN-BookingService/pkg/psqlbuilder"
)

var techColumns = []string{
	"id",
	"name",
	"service_availability",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository persists nail technicians.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a nail tech repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a technician.
func (r *Repository) Create(ctx context.Context, t *domain.NailTech) (*domain.NailTech, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("nail_techs").
		Columns("id", "name", "service_availability", "is_active").
		Values(t.ID, t.Name, t.ServiceAvailability, t.IsActive).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time
	return t, nil
}

// GetByID fetches one technician.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.NailTech, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(techColumns...).
		From("nail_techs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.NailTech
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.Name,
		&t.ServiceAvailability,
		&t.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNailTechNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan nail tech: %v", ErrScanRow, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time
	return &t, nil
}

// ListActive returns all active technicians ordered by name.
func (r *Repository) ListActive(ctx context.Context) ([]*domain.NailTech, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(techColumns...).
		From("nail_techs").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	techs := make([]*domain.NailTech, 0)
	for rows.Next() {
		var t domain.NailTech
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&t.ID, &t.Name, &t.ServiceAvailability, &t.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		t.CreatedAt = createdAt.Time
		t.UpdatedAt = updatedAt.Time
		techs = append(techs, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}
	return techs, nil
}
