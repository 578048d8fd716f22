package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied is returned when the actor may not touch this booking
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotConfirm is returned when the booking is not pending
	ErrCannotConfirm = errors.New("booking cannot be confirmed")

	// ErrPaymentRequired is returned when confirmation lacks the deposit
	ErrPaymentRequired = errors.New("deposit payment required to confirm")

	// ErrCannotCancel is returned when the booking is already terminal
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCannotReschedule is returned when the booking is already terminal
	ErrCannotReschedule = errors.New("booking cannot be rescheduled")

	// ErrCannotComplete is returned when the booking is not confirmed
	ErrCannotComplete = errors.New("booking cannot be completed")

	// ErrCannotMarkNoShow is returned when the booking is not confirmed
	ErrCannotMarkNoShow = errors.New("booking cannot be marked no-show")

	// ErrReasonRequired is returned when a status reason is mandatory and missing
	ErrReasonRequired = errors.New("status reason required")

	// ErrInvalidAmount is returned on negative or malformed money input
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrPaymentLocked is returned when payment edits on a completed booking lack authority
	ErrPaymentLocked = errors.New("payment locked on completed booking")

	// ErrInvoiceNotAllowed is returned when the booking state forbids invoicing
	ErrInvoiceNotAllowed = errors.New("invoice not allowed in current status")

	// ErrInvoiceNotFound is returned when the booking has no quotation yet
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("service: internal error")
)
