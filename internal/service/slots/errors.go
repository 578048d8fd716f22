package slots

import "errors"

var (
	// ErrSlotNotFound is returned when the slot does not exist
	ErrSlotNotFound = errors.New("slot not found")

	// ErrNailTechNotFound is returned when the technician does not exist
	ErrNailTechNotFound = errors.New("nail tech not found")

	// ErrDuplicateSlot is returned when a slot already exists at that time
	ErrDuplicateSlot = errors.New("slot already exists at that time")

	// ErrSlotOccupied is returned when the slot is held by a booking
	ErrSlotOccupied = errors.New("slot is held by a booking")

	// ErrAccessDenied is returned when the actor may not manage these slots
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("service: internal error")
)
