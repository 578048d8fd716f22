package notification_sweep

import "errors"

var (
	// ErrInternal is returned when the sweep cannot scan bookings at all
	ErrInternal = errors.New("notification_sweep: internal error")
)
