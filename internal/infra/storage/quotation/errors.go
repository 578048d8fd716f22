package quotation

import "errors"

var (
	// ErrQuotationNotFound is returned when a quotation does not exist
	ErrQuotationNotFound = errors.New("quotation.repository: quotation not found")

	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("quotation.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute
	ErrExecQuery = errors.New("quotation.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("quotation.repository: failed to scan row")

	// ErrEncodeItems is returned when line items cannot be encoded or decoded
	ErrEncodeItems = errors.New("quotation.repository: failed to encode items")
)
