package domain

import (
	"time"

	"github.com/gleamnails/GN-BookingService/pkg/types"
)

// SlotStatus represents the lifecycle state of a time slot.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotPending   SlotStatus = "pending"
	SlotConfirmed SlotStatus = "confirmed"
	SlotBlocked   SlotStatus = "blocked"
)

// SlotType distinguishes regular slots from squeeze-in slots, which carry a
// fixed additional fee applied at invoice time.
type SlotType string

const (
	SlotRegular        SlotType = "regular"
	SlotWithSqueezeFee SlotType = "with_squeeze_fee"
)

// Slot is one bookable unit of a technician's day. An available slot is
// unowned; a pending or confirmed slot is referenced by exactly one booking.
type Slot struct {
	ID         string
	Date       time.Time // calendar day, time component zeroed
	StartTime  types.TimeString
	Status     SlotStatus
	SlotType   SlotType
	NailTechID string
	IsHidden   bool
	Notes      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable reports whether the slot can be claimed by a new booking.
func (s *Slot) IsBookable() bool {
	return s.Status == SlotAvailable && !s.IsHidden
}

// StartsAt anchors the slot on its calendar day in the salon timezone.
func (s *Slot) StartsAt() (time.Time, error) {
	return s.StartTime.At(s.Date, ManilaLocation())
}

// SlotRangeFilter selects a technician's slots within a date range.
type SlotRangeFilter struct {
	NailTechID    string
	From          time.Time
	To            time.Time
	IncludeHidden bool
	Status        *SlotStatus
}
