package create_booking

import (
	"context"
	"time"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/internal/events"
	"github.com/gleamnails/GN-BookingService/internal/service/customers"
)

// BookingRepository is the booking persistence the usecase needs.
type BookingRepository interface {
	NextBookingCode(ctx context.Context, day time.Time) (string, error)
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
}

// SlotRepository is the slot persistence the usecase needs. Inside a
// transaction GetByIDs locks the rows for the duration of the claim.
type SlotRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Slot, error)
	ListByRange(ctx context.Context, filter domain.SlotRangeFilter) ([]*domain.Slot, error)
	TransitionStatus(ctx context.Context, ids []string, nailTechID string, from, to domain.SlotStatus) error
}

// NailTechRepository resolves the technician being booked.
type NailTechRepository interface {
	GetByID(ctx context.Context, id string) (*domain.NailTech, error)
}

// CustomerResolver matches the booking form's contact details to a customer.
type CustomerResolver interface {
	FindOrCreate(ctx context.Context, in customers.NewCustomerInput) (*domain.Customer, error)
}

// LedgerRecomputer rebuilds a customer's aggregates after the booking lands.
type LedgerRecomputer interface {
	RecomputeLedger(ctx context.Context, customerID string) error
}

// EventEmitter publishes lifecycle events to the side channels.
type EventEmitter interface {
	Emit(e events.Event)
}

// TransactionManager runs the claim inside a serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider abstracts the clock for testability.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface the usecase depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
