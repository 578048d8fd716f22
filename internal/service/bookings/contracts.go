package bookings

import (
	"context"
	"time"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/internal/events"
)

// BookingRepository is the persistence port for bookings.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByCode(ctx context.Context, code string) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
}

// SlotRepository is the slice of slot persistence booking transitions need.
type SlotRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Slot, error)
	TransitionStatus(ctx context.Context, ids []string, nailTechID string, from, to domain.SlotStatus) error
	Release(ctx context.Context, ids []string) error
}

// QuotationRepository is the persistence port for invoice quotations.
type QuotationRepository interface {
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Quotation, error)
	Upsert(ctx context.Context, q *domain.Quotation) (*domain.Quotation, error)
}

// CustomerReader loads customer snapshots for event payloads.
type CustomerReader interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

// LedgerRecomputer rebuilds a customer's aggregates after a booking mutation.
type LedgerRecomputer interface {
	RecomputeLedger(ctx context.Context, customerID string) error
}

// EventEmitter publishes lifecycle events to the side channels.
type EventEmitter interface {
	Emit(e events.Event)
}

// TransactionManager runs a function inside a database transaction.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider abstracts the clock for testability.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger is the logging interface the service depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
