package customers

import (
	"context"

	"github.com/gleamnails/GN-BookingService/internal/domain"
)

// CustomerRepository is the persistence port for customers.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	UpdateStats(ctx context.Context, id string, stats domain.CustomerStats) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// BookingRepository is the slice of booking persistence the ledger needs.
type BookingRepository interface {
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error)
	CountActiveByCustomer(ctx context.Context, customerID string) (int, error)
}

// Logger is the logging interface the service depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
