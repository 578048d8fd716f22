package customer

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

var customerColumns = []string{
	"id",
	"name",
	"phone",
	"email",
	"social_handle",
	"referral_source",
	"is_active",
	"total_bookings",
	"completed_bookings",
	"total_spent",
	"total_tips",
	"total_discounts",
	"last_visit",
	"client_type",
	"created_at",
	"updated_at",
}

// Repository persists customers and their ledger aggregates.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a customer repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a customer.
func (r *Repository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("id", "name", "phone", "email", "social_handle", "referral_source", "is_active", "client_type").
		Values(c.ID, c.Name, c.Phone, c.Email, c.SocialHandle, c.ReferralSource, c.IsActive, c.Stats.ClientType).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, fmt.Errorf("%w: Create: %v", ErrDuplicatePhone, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return c, nil
}

// GetByID fetches one customer.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return r.getByColumn(ctx, "id", id)
}

// GetByPhone looks a customer up by phone number. This is the repeat-client
// match used at booking time.
func (r *Repository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	return r.getByColumn(ctx, "phone", phone)
}

func (r *Repository) getByColumn(ctx context.Context, column, value string) (*domain.Customer, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(squirrel.Eq{column: value}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByColumn - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByColumn - scan customer: %v", ErrScanRow, err)
	}
	return c, nil
}

// UpdateStats overwrites the ledger aggregates. The write is
// recompute-and-overwrite, never increment, so concurrent recomputes are
// harmless.
func (r *Repository) UpdateStats(ctx context.Context, id string, stats domain.CustomerStats) error {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customers").
		Set("total_bookings", stats.TotalBookings).
		Set("completed_bookings", stats.CompletedBookings).
		Set("total_spent", stats.TotalSpent).
		Set("total_tips", stats.TotalTips).
		Set("total_discounts", stats.TotalDiscounts).
		Set("last_visit", stats.LastVisit).
		Set("client_type", stats.ClientType).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStats - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStats - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStats - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// SetActive toggles soft deactivation.
func (r *Repository) SetActive(ctx context.Context, id string, active bool) error {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("customers").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// Delete removes a customer permanently. The service layer guards this with
// the active-booking check.
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&c.SocialHandle,
		&c.ReferralSource,
		&c.IsActive,
		&c.Stats.TotalBookings,
		&c.Stats.CompletedBookings,
		&c.Stats.TotalSpent,
		&c.Stats.TotalTips,
		&c.Stats.TotalDiscounts,
		&c.Stats.LastVisit,
		&c.Stats.ClientType,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return &c, nil
}
