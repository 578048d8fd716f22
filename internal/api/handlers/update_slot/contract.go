package update_slot

import (
	"context"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	slotService "github.com/gleamnails/GN-BookingService/internal/service/slots"
)

type SlotService interface {
	Update(ctx context.Context, actor domain.Actor, slotID string, in slotService.UpdateInput) (*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
