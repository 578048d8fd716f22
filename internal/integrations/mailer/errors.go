package mailer

import "errors"

var (
	// ErrSendFailed is returned when the provider rejects or fails a send
	ErrSendFailed = errors.New("mailer: send failed")

	// ErrInvalidResponse is returned on an unexpected provider response
	ErrInvalidResponse = errors.New("mailer: invalid provider response")

	// ErrInternal is returned on request construction or transport failures
	ErrInternal = errors.New("mailer: internal error")
)
