package customer

import "errors"

var (
	// ErrCustomerNotFound is returned when a customer does not exist
	ErrCustomerNotFound = errors.New("customer.repository: customer not found")

	// ErrDuplicatePhone is returned when a created customer collides with an
	// existing phone number
	ErrDuplicatePhone = errors.New("customer.repository: duplicate phone")

	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("customer.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute
	ErrExecQuery = errors.New("customer.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("customer.repository: failed to scan row")
)
