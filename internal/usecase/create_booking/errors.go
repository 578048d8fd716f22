package create_booking

import "errors"

var (
	// ErrNailTechNotFound is returned when the technician does not exist
	ErrNailTechNotFound = errors.New("create_booking: nail tech not found")

	// ErrNailTechInactive is returned when the technician is not taking bookings
	ErrNailTechInactive = errors.New("create_booking: nail tech is inactive")

	// ErrLocationNotServed is returned when the technician does not serve the requested location
	ErrLocationNotServed = errors.New("create_booking: nail tech does not serve this location")

	// ErrSlotNotFound is returned when a requested slot does not exist
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotNotAvailable is returned when a requested slot is already taken or hidden
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrSlotMismatch is returned when the slots belong to a different technician
	ErrSlotMismatch = errors.New("create_booking: slot belongs to another nail tech")

	// ErrSlotsNotSameDay is returned when the slots span multiple days
	ErrSlotsNotSameDay = errors.New("create_booking: slots must be on the same day")

	// ErrSlotsNotContiguous is returned when the slots do not form a consecutive run
	ErrSlotsNotContiguous = errors.New("create_booking: slots must be consecutive")

	// ErrSlotInPast is returned when the appointment start is already behind
	ErrSlotInPast = errors.New("create_booking: slot is in the past")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("create_booking: internal error")
)
