package quotation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/pkg/dbexec"
	"github.com/gleamnails/GN-BookingService/pkg/psqlbuilder"
)

var quotationColumns = []string{
	"id",
	"booking_id",
	"items",
	"subtotal",
	"discount_rate",
	"discount_amount",
	"squeeze_in_fee",
	"total_amount",
	"notes",
	"created_at",
	"updated_at",
}

// Repository persists quotations. Line items are stored as a JSONB document;
// they are only ever read and written as a whole.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a quotation repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBookingID fetches the quotation linked to a booking.
func (r *Repository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Quotation, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(quotationColumns...).
		From("quotations").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	q, err := scanQuotation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrQuotationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan quotation: %v", ErrScanRow, err)
	}
	return q, nil
}

// Upsert creates the quotation on first use and rewrites it in place
// afterwards. The booking_id unique constraint keeps the 1:1 relationship:
// a booking can never accumulate duplicate quotations.
func (r *Repository) Upsert(ctx context.Context, q *domain.Quotation) (*domain.Quotation, error) {
	executor := dbexec.GetExecutor(ctx, r.db)

	items, err := json.Marshal(q.Items)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - marshal items: %v", ErrEncodeItems, err)
	}

	query, args, err := psqlbuilder.Insert("quotations").
		Columns("id", "booking_id", "items", "subtotal", "discount_rate", "discount_amount", "squeeze_in_fee", "total_amount", "notes").
		Values(q.ID, q.BookingID, items, q.Subtotal, q.DiscountRate, q.DiscountAmount, q.SqueezeInFee, q.TotalAmount, q.Notes).
		Suffix(`ON CONFLICT (booking_id) DO UPDATE SET
			items = EXCLUDED.items,
			subtotal = EXCLUDED.subtotal,
			discount_rate = EXCLUDED.discount_rate,
			discount_amount = EXCLUDED.discount_amount,
			squeeze_in_fee = EXCLUDED.squeeze_in_fee,
			total_amount = EXCLUDED.total_amount,
			notes = EXCLUDED.notes,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&q.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	q.CreatedAt = createdAt.Time
	q.UpdatedAt = updatedAt.Time
	return q, nil
}

// DeleteByBookingID removes the quotation linked to a booking, if any.
func (r *Repository) DeleteByBookingID(ctx context.Context, bookingID string) error {
	executor := dbexec.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("quotations").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuotation(row rowScanner) (*domain.Quotation, error) {
	var q domain.Quotation
	var createdAt, updatedAt sql.NullTime
	var items []byte

	err := row.Scan(
		&q.ID,
		&q.BookingID,
		&items,
		&q.Subtotal,
		&q.DiscountRate,
		&q.DiscountAmount,
		&q.SqueezeInFee,
		&q.TotalAmount,
		&q.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &q.Items); err != nil {
		return nil, fmt.Errorf("%w: scanQuotation - unmarshal items: %v", ErrEncodeItems, err)
	}
	q.CreatedAt = createdAt.Time
	q.UpdatedAt = updatedAt.Time
	return &q, nil
}
