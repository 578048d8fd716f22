package sheetsync

import "errors"

var (
	// ErrSyncFailed is returned when the sheet service rejects the row
	ErrSyncFailed = errors.New("sheetsync: sync failed")

	// ErrInvalidResponse is returned on an unexpected service response
	ErrInvalidResponse = errors.New("sheetsync: invalid service response")

	// ErrInternal is returned on request construction or transport failures
	ErrInternal = errors.New("sheetsync: internal error")
)
