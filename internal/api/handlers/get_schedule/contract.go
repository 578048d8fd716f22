package get_schedule

import (
	"context"
	"time"

	"github.com/gleamnails/GN-BookingService/internal/domain"
)

type SlotService interface {
	ListSchedule(ctx context.Context, actor domain.Actor, nailTechID string, from, to time.Time) ([]*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
