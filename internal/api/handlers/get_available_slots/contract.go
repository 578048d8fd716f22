package get_available_slots

import (
	"context"
	"time"

	"github.com/gleamnails/GN-BookingService/internal/domain"
)

type SlotService interface {
	ListAvailability(ctx context.Context, nailTechID string, from, to time.Time) ([]*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
