package create_slots

import (
	"context"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	slotService "github.com/gleamnails/GN-BookingService/internal/service/slots"
)

type SlotService interface {
	CreateBatch(ctx context.Context, nailTechID string, inputs []slotService.NewSlotInput) ([]*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
