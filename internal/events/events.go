// Package events carries booking lifecycle notifications from the core to
// best-effort side channels (customer email, spreadsheet backup). Delivery is
// asynchronous and lossy under pressure; the database stays the source of
// truth and a dropped event never affects booking state.
package events

import (
	"time"

	"github.com/gleamnails/GN-BookingService/internal/domain"
)

// Type identifies one booking lifecycle event.
type Type string

const (
	TypeBookingCreated     Type = "booking_created"
	TypeBookingConfirmed   Type = "booking_confirmed"
	TypeBookingCancelled   Type = "booking_cancelled"
	TypeBookingCompleted   Type = "booking_completed"
	TypeBookingRescheduled Type = "booking_rescheduled"
	TypeBookingNoShow      Type = "booking_no_show"
	TypePaymentUpdated     Type = "payment_updated"
	TypeInvoiceUpdated     Type = "invoice_updated"
)

// Event is one emitted lifecycle notification. Booking and Customer are
// snapshots taken after the mutation committed; sinks must not write them
// back.
type Event struct {
	Type       Type
	Booking    *domain.Booking
	Customer   *domain.Customer
	OccurredAt time.Time
}
