package nailtech

import "errors"

var (
	// ErrNailTechNotFound is returned when a technician does not exist
	ErrNailTechNotFound = errors.New("nailtech.repository: nail tech not found")

	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("nailtech.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute
	ErrExecQuery = errors.New("nailtech.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("nailtech.repository: failed to scan row")
)
