package update_booking

import (
	"context"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	bookingService "github.com/gleamnails/GN-BookingService/internal/service/bookings"
	rescheduleBooking "github.com/gleamnails/GN-BookingService/internal/usecase/reschedule_booking"
)

type BookingService interface {
	Confirm(ctx context.Context, actor domain.Actor, bookingID string, skipDepositCheck bool) (*domain.Booking, error)
	Cancel(ctx context.Context, actor domain.Actor, bookingID string, adminOverride bool, reason string) (*domain.Booking, error)
	MarkRescheduled(ctx context.Context, actor domain.Actor, bookingID, reason string) (*domain.Booking, error)
	UpdatePayment(ctx context.Context, actor domain.Actor, bookingID string, in bookingService.PaymentInput) (*domain.Booking, error)
	MarkCompleted(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Booking, error)
	MarkNoShow(ctx context.Context, actor domain.Actor, bookingID, reason string) (*domain.Booking, error)
	UpsertInvoice(ctx context.Context, actor domain.Actor, bookingID string, in bookingService.InvoiceInput) (*domain.Quotation, error)
	UpdateNotes(ctx context.Context, actor domain.Actor, bookingID string, in bookingService.NotesInput) (*domain.Booking, error)
}

type RescheduleUseCase interface {
	Execute(ctx context.Context, actor domain.Actor, req *rescheduleBooking.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
