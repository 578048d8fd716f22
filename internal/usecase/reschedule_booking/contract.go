package reschedule_booking

import (
	"context"
	"time"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/internal/events"
)

// BookingRepository is the booking persistence the usecase needs. Inside a
// transaction GetByID locks the booking row.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
}

// SlotRepository is the slot persistence the usecase needs.
type SlotRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Slot, error)
	ListByRange(ctx context.Context, filter domain.SlotRangeFilter) ([]*domain.Slot, error)
	TransitionStatus(ctx context.Context, ids []string, nailTechID string, from, to domain.SlotStatus) error
	Release(ctx context.Context, ids []string) error
}

// EventEmitter publishes lifecycle events to the side channels.
type EventEmitter interface {
	Emit(e events.Event)
}

// CustomerReader loads customer snapshots for event payloads.
type CustomerReader interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

// TransactionManager runs the swap inside a serializable transaction.
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
