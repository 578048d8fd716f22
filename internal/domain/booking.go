package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking.
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusRescheduled BookingStatus = "rescheduled"
	StatusNoShow      BookingStatus = "no_show"
)

// PaymentStatus is derived from paid amount vs deposit/total thresholds,
// except refunded, which is set explicitly.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// ClientType marks first-time vs repeat clients.
type ClientType string

const (
	ClientNew    ClientType = "new"
	ClientRepeat ClientType = "repeat"
)

// ServiceDetails describes what was booked.
type ServiceDetails struct {
	Type       string // e.g. "gel_manicure", "mani_pedi"
	Location   ServiceLocation
	ClientType ClientType
}

// Pricing carries the money fields of a booking.
type Pricing struct {
	Total           decimal.Decimal
	DepositRequired decimal.Decimal
	PaidAmount      decimal.Decimal
	TipAmount       decimal.Decimal
	DiscountAmount  decimal.Decimal
}

// PaymentInfo records how and when the client paid.
type PaymentInfo struct {
	Method        *string // e.g. "gcash", "bank_transfer", "cash"
	DepositPaidAt *time.Time
	FullyPaidAt   *time.Time
	ProofRef      *string // uploaded payment-proof reference
}

// InvoiceRef is the booking-side summary of its linked quotation.
// InvoiceRef.Total must always equal the quotation's TotalAmount.
type InvoiceRef struct {
	QuotationID *string
	Total       decimal.Decimal
	CreatedAt   *time.Time
}

// Booking is one reservation: a customer, a technician and one or more
// consecutive slots, plus pricing and payment state.
type Booking struct {
	ID          string
	BookingCode string // GN-YYYYMMDD###, unique
	CustomerID  string
	NailTechID  string
	SlotIDs     []string // ordered; non-empty while pending/confirmed

	Service       ServiceDetails
	Status        BookingStatus
	PaymentStatus PaymentStatus
	Pricing       Pricing
	Payment       PaymentInfo
	Invoice       InvoiceRef

	ClientNotes  *string
	AdminNotes   *string
	StatusReason *string
	ClientPhotos []string

	ConfirmedAt *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTerminal reports whether the booking reached a state the normal flow
// never leaves.
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusNoShow
}

// IsActive reports whether the booking still holds its slots.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeConfirmed reports whether a confirm transition is legal.
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCancelled reports whether a cancel transition is legal.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCompleted reports whether the service can be marked delivered.
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// CanBeMarkedNoShow reports whether a no-show transition is legal.
// No-show keeps the slots consumed; the client occupied them without
// attending.
func (b *Booking) CanBeMarkedNoShow() bool {
	return b.Status == StatusConfirmed
}

// CanBeRescheduled reports whether the slots can be swapped.
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// HasDeposit reports whether the recorded payment covers the deposit.
func (b *Booking) HasDeposit() bool {
	return b.PaymentStatus == PaymentPartial || b.PaymentStatus == PaymentPaid
}

// DerivePaymentStatus recomputes the status from amounts. The thresholds:
// unpaid below deposit, partial at or above deposit but below total, paid at
// or above total. Decreasing the paid amount recomputes downward as well.
func DerivePaymentStatus(paid, deposit, total decimal.Decimal) PaymentStatus {
	if total.IsPositive() && paid.GreaterThanOrEqual(total) {
		return PaymentPaid
	}
	if paid.IsPositive() && paid.GreaterThanOrEqual(deposit) {
		return PaymentPartial
	}
	return PaymentUnpaid
}

// BookingFilter selects bookings for admin/staff listings and the sweep.
type BookingFilter struct {
	CustomerID *string
	NailTechID *string
	Statuses   []BookingStatus
	DateFrom   *time.Time
	DateTo     *time.Time
}

// ValidStatuses are all accepted booking statuses, used for input validation.
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusRescheduled,
	StatusNoShow,
}
