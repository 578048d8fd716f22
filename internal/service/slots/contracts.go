package slots

import (
	"context"

	"github.com/gleamnails/GN-BookingService/internal/domain"
)

// SlotRepository is the persistence port for slots.
type SlotRepository interface {
	CreateBatch(ctx context.Context, slots []*domain.Slot) error
	GetByID(ctx context.Context, id string) (*domain.Slot, error)
	ListByRange(ctx context.Context, filter domain.SlotRangeFilter) ([]*domain.Slot, error)
	Update(ctx context.Context, s *domain.Slot) error
}

// NailTechRepository is the slice of technician persistence slot management needs.
type NailTechRepository interface {
	GetByID(ctx context.Context, id string) (*domain.NailTech, error)
}

// Logger is the logging interface the service depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
