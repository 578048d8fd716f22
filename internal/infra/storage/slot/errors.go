package slot

import "errors"

var (
	// ErrSlotNotFound is returned when a slot does not exist
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotConflict is returned when a conditional status transition did not
	// apply to every requested slot, i.e. at least one slot was not in the
	// expected state at commit time
	ErrSlotConflict = errors.New("slot.repository: slot not in expected status")

	// ErrDuplicateSlot is returned when a created slot collides with an
	// existing (technician, date, time) entry
	ErrDuplicateSlot = errors.New("slot.repository: duplicate slot")

	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
