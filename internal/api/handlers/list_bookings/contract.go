package list_bookings

import (
	"context"

	"github.com/gleamnails/GN-BookingService/internal/domain"
)

type BookingService interface {
	List(ctx context.Context, actor domain.Actor, filter domain.BookingFilter) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
