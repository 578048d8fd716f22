package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/gleamnails/GN-BookingService/internal/domain"
)

// validateRequest checks the form fields before any storage access.
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.NailTechID) == "" {
		return fmt.Errorf("%w: nailTechId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ServiceType) == "" {
		return fmt.Errorf("%w: serviceType is required", ErrInvalidInput)
	}
	switch req.ServiceLocation {
	case domain.LocationStudio, domain.LocationHome:
	default:
		return fmt.Errorf("%w: invalid serviceLocation %q", ErrInvalidInput, req.ServiceLocation)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}

	if len(req.SlotIDs) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}
	if len(req.SlotIDs) > domain.MaxSlotsPerBooking {
		return fmt.Errorf("%w: at most %d slots per booking", ErrInvalidInput, domain.MaxSlotsPerBooking)
	}
	seen := make(map[string]struct{}, len(req.SlotIDs))
	for _, id := range req.SlotIDs {
		if id == "" {
			return fmt.Errorf("%w: empty slot id", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate slot id %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if req.ClientNotes != nil && len(*req.ClientNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: client notes too long", ErrInvalidInput)
	}
	return nil
}

// validateSlots checks the locked slot rows against the request. The slots
// must all belong to the requested technician, fall on one day and be
// individually bookable.
func validateSlots(slots []*domain.Slot, req *Request, now time.Time) error {
	if len(slots) != len(req.SlotIDs) {
		return ErrSlotNotFound
	}

	day := slots[0].Date
	for _, s := range slots {
		if s.NailTechID != req.NailTechID {
			return ErrSlotMismatch
		}
		if !s.Date.Equal(day) {
			return ErrSlotsNotSameDay
		}
		if !s.IsBookable() {
			return ErrSlotNotAvailable
		}
	}

	// The appointment must start in the future, judged in salon local time.
	start, err := slots[0].StartsAt()
	if err != nil {
		return fmt.Errorf("%w: failed to resolve slot start: %v", ErrInternal, err)
	}
	if !start.After(now) {
		return ErrSlotInPast
	}
	return nil
}

// validateContiguous checks that the chosen slots form one consecutive run
// in the technician's ordered slot list for that day. Hidden and blocked
// slots count as gaps the run may not jump over.
func validateContiguous(chosen []*domain.Slot, daySlots []*domain.Slot) error {
	if len(chosen) <= 1 {
		return nil
	}

	chosenIDs := make(map[string]struct{}, len(chosen))
	for _, s := range chosen {
		chosenIDs[s.ID] = struct{}{}
	}

	firstIdx := -1
	for i, s := range daySlots {
		if _, ok := chosenIDs[s.ID]; ok {
			firstIdx = i
			break
		}
	}
	if firstIdx < 0 || firstIdx+len(chosen) > len(daySlots) {
		return ErrSlotsNotContiguous
	}
	for i := 0; i < len(chosen); i++ {
		if _, ok := chosenIDs[daySlots[firstIdx+i].ID]; !ok {
			return ErrSlotsNotContiguous
		}
	}
	return nil
}
