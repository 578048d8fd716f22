package customers

import "errors"

var (
	// ErrCustomerNotFound is returned when the customer does not exist
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrDuplicatePhone is returned when the phone number is already registered
	ErrDuplicatePhone = errors.New("phone number already registered")

	// ErrHasActiveBookings is returned when deletion is blocked by pending or confirmed bookings
	ErrHasActiveBookings = errors.New("customer has active bookings")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("service: internal error")
)
