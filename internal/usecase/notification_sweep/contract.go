package notification_sweep

import (
	"context"
	"time"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/internal/integrations/mailer"
)

// BookingRepository lists the bookings the sweep scans.
type BookingRepository interface {
	ListWithFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// SlotRepository resolves a booking's slots to find the appointment start.
type SlotRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Slot, error)
}

// CustomerReader loads the recipient.
type CustomerReader interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

// NotificationLog is the at-most-once guard. Claim wins exactly one sender
// per (booking, type); Release undoes a claim whose send failed.
type NotificationLog interface {
	Claim(ctx context.Context, bookingID string, kind domain.NotificationType) (bool, error)
	Release(ctx context.Context, bookingID string, kind domain.NotificationType) error
}

// RateLimitPruner drops expired rate-limit windows. Piggybacked on the sweep
// as periodic housekeeping.
type RateLimitPruner interface {
	PruneExpired(ctx context.Context) (int64, error)
}

// MailClient sends the reminder emails.
type MailClient interface {
	Send(ctx context.Context, msg mailer.Message) error
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
