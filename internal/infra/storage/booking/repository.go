package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/pkg/dbexec"
	"github.com/gleamnails/GN-BookingService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"booking_code",
	"customer_id",
	"nail_tech_id",
	"slot_ids",
	"service_type",
	"service_location",
	"client_type",
	"status",
	"payment_status",
	"total",
	"deposit_required",
	"paid_amount",
	"tip_amount",
	"discount_amount",
	"payment_method",
	"deposit_paid_at",
	"fully_paid_at",
	"payment_proof_ref",
	"quotation_id",
	"invoice_total",
	"invoice_created_at",
	"client_notes",
	"admin_notes",
	"status_reason",
	"client_photos",
	"confirmed_at",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository persists bookings and owns the per-day booking-code counter.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a booking repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// NextBookingCode reserves the next sequence number for the given day and
// formats it as GN-YYYYMMDD###. The upsert increments atomically, so
// concurrent creates on the same day can never receive the same code.
func (r *Repository) NextBookingCode(ctx context.Context, day time.Time) (string, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	const query = `
		INSERT INTO booking_code_counters (code_date, seq)
		VALUES ($1, 1)
		ON CONFLICT (code_date)
		DO UPDATE SET seq = booking_code_counters.seq + 1
		RETURNING seq`

	dateKey := day.Format(domain.DateFormat)
	var seq int
	if err := executor.QueryRowContext(ctx, query, dateKey).Scan(&seq); err != nil {
		return "", fmt.Errorf("%w: NextBookingCode - execute upsert: %v", ErrExecQuery, err)
	}

	return fmt.Sprintf("%s-%s%03d", domain.BookingCodePrefix, day.Format(domain.BookingCodeDateFormat), seq), nil
}

// Create inserts a booking. Callers normally run this inside the serializable
// transaction that also claims the slots, so the pair commits or fails as one.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"booking_code",
			"customer_id",
			"nail_tech_id",
			"slot_ids",
			"service_type",
			"service_location",
			"client_type",
			"status",
			"payment_status",
			"total",
			"deposit_required",
			"paid_amount",
			"tip_amount",
			"discount_amount",
			"client_notes",
			"admin_notes",
			"client_photos",
		).
		Values(
			b.ID,
			b.BookingCode,
			b.CustomerID,
			b.NailTechID,
			pq.Array(b.SlotIDs),
			b.Service.Type,
			b.Service.Location,
			b.Service.ClientType,
			b.Status,
			b.PaymentStatus,
			b.Pricing.Total,
			b.Pricing.DepositRequired,
			b.Pricing.PaidAmount,
			b.Pricing.TipAmount,
			b.Pricing.DiscountAmount,
			b.ClientNotes,
			b.AdminNotes,
			pq.Array(b.ClientPhotos),
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, fmt.Errorf("%w: Create: %v", ErrDuplicateCode, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return b, nil
}

// GetByID fetches a booking by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return r.getByColumn(ctx, "id", id)
}

// GetByCode fetches a booking by its human-readable code.
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	return r.getByColumn(ctx, "booking_code", code)
}

func (r *Repository) getByColumn(ctx context.Context, column, value string) (*domain.Booking, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{column: value})

	if dbexec.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByColumn - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByColumn - scan booking: %v", ErrScanRow, err)
	}
	return b, nil
}

// ListByCustomer returns every booking of one customer. This is the read the
// ledger recompute is derived from, so it never filters by status.
func (r *Repository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListWithFilter returns bookings matching the admin/staff listing filter.
// DateFrom/DateTo bound the creation timestamp.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("created_at DESC")

	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.NailTechID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"nail_tech_id": *filter.NailTechID})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"created_at": *filter.DateTo})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountActiveByCustomer counts pending/confirmed bookings for the hard-delete guard.
func (r *Repository) CountActiveByCustomer(ctx context.Context, customerID string) (int, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.Eq{"status": []string{string(domain.StatusPending), string(domain.StatusConfirmed)}}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveByCustomer - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

// Update rewrites every mutable field of a booking. Status transitions go
// through the booking service, which loads, validates and then persists via
// this method inside one unit of work.
func (r *Repository) Update(ctx context.Context, b *domain.Booking) error {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("slot_ids", pq.Array(b.SlotIDs)).
		Set("status", b.Status).
		Set("payment_status", b.PaymentStatus).
		Set("total", b.Pricing.Total).
		Set("deposit_required", b.Pricing.DepositRequired).
		Set("paid_amount", b.Pricing.PaidAmount).
		Set("tip_amount", b.Pricing.TipAmount).
		Set("discount_amount", b.Pricing.DiscountAmount).
		Set("payment_method", b.Payment.Method).
		Set("deposit_paid_at", b.Payment.DepositPaidAt).
		Set("fully_paid_at", b.Payment.FullyPaidAt).
		Set("payment_proof_ref", b.Payment.ProofRef).
		Set("quotation_id", b.Invoice.QuotationID).
		Set("invoice_total", b.Invoice.Total).
		Set("invoice_created_at", b.Invoice.CreatedAt).
		Set("client_notes", b.ClientNotes).
		Set("admin_notes", b.AdminNotes).
		Set("status_reason", b.StatusReason).
		Set("client_photos", pq.Array(b.ClientPhotos)).
		Set("confirmed_at", b.ConfirmedAt).
		Set("completed_at", b.CompletedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
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
		return ErrBookingNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime
	var slotIDs, clientPhotos pq.StringArray

	err := row.Scan(
		&b.ID,
		&b.BookingCode,
		&b.CustomerID,
		&b.NailTechID,
		&slotIDs,
		&b.Service.Type,
		&b.Service.Location,
		&b.Service.ClientType,
		&b.Status,
		&b.PaymentStatus,
		&b.Pricing.Total,
		&b.Pricing.DepositRequired,
		&b.Pricing.PaidAmount,
		&b.Pricing.TipAmount,
		&b.Pricing.DiscountAmount,
		&b.Payment.Method,
		&b.Payment.DepositPaidAt,
		&b.Payment.FullyPaidAt,
		&b.Payment.ProofRef,
		&b.Invoice.QuotationID,
		&b.Invoice.Total,
		&b.Invoice.CreatedAt,
		&b.ClientNotes,
		&b.AdminNotes,
		&b.StatusReason,
		&clientPhotos,
		&b.ConfirmedAt,
		&b.CompletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.SlotIDs = []string(slotIDs)
	b.ClientPhotos = []string(clientPhotos)
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}
	return bookings, nil
}
