package notificationlog

import "errors"

var (
	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("notificationlog.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute
	ErrExecQuery = errors.New("notificationlog.repository: failed to execute query")
)
