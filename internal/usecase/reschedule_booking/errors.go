package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied is returned when the actor may not touch this booking
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrCannotReschedule is returned when the booking is already terminal
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrSlotNotFound is returned when a requested slot does not exist
	ErrSlotNotFound = errors.New("reschedule_booking: slot not found")

	// ErrSlotNotAvailable is returned when a requested slot is already taken or hidden
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrSlotMismatch is returned when the slots belong to a different technician
	ErrSlotMismatch = errors.New("reschedule_booking: slot belongs to another nail tech")

	// ErrSlotsNotSameDay is returned when the slots span multiple days
	ErrSlotsNotSameDay = errors.New("reschedule_booking: slots must be on the same day")

	// ErrSlotsNotContiguous is returned when the slots do not form a consecutive run
	ErrSlotsNotContiguous = errors.New("reschedule_booking: slots must be consecutive")

	// ErrSlotInPast is returned when the new appointment start is already behind
	ErrSlotInPast = errors.New("reschedule_booking: slot is in the past")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("reschedule_booking: internal error")
)
