package get_available_slots

import (
	"github.com/gleamnails/GN-BookingService/internal/domain"
)

// SlotResponse is one bookable slot as shown on the booking form.
type SlotResponse struct {
	ID         string `json:"id"`
	Date       string `json:"date"`      // YYYY-MM-DD
	StartTime  string `json:"startTime"` // HH:MM
	SlotType   string `json:"slotType"`
	NailTechID string `json:"nailTechId"`
}

// AvailableSlotsResponse wraps the slots.
type AvailableSlotsResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// FromDomainSlots converts domain slots to the HTTP view.
func FromDomainSlots(list []*domain.Slot) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(list))
	for _, s := range list {
		slots = append(slots, SlotResponse{
			ID:         s.ID,
			Date:       s.Date.Format(domain.DateFormat),
			StartTime:  s.StartTime.String(),
			SlotType:   string(s.SlotType),
			NailTechID: s.NailTechID,
		})
	}
	return &AvailableSlotsResponse{
		Slots: slots,
		Total: len(slots),
	}
}
