package get_schedule

import (
	"github.com/gleamnails/GN-BookingService/internal/domain"
)

// SlotResponse is one calendar slot as seen by staff. Unlike the public
// availability view it exposes status, hidden flag and notes.
type SlotResponse struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`      // YYYY-MM-DD
	StartTime  string  `json:"startTime"` // HH:MM
	Status     string  `json:"status"`
	SlotType   string  `json:"slotType"`
	IsHidden   bool    `json:"isHidden"`
	Notes      *string `json:"notes,omitempty"`
	NailTechID string  `json:"nailTechId"`
}

// ScheduleResponse wraps the slots.
type ScheduleResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// FromDomainSlots converts domain slots to the HTTP view.
func FromDomainSlots(list []*domain.Slot) *ScheduleResponse {
	slots := make([]SlotResponse, 0, len(list))
	for _, s := range list {
		slots = append(slots, SlotResponse{
			ID:         s.ID,
			Date:       s.Date.Format(domain.DateFormat),
			StartTime:  s.StartTime.String(),
			Status:     string(s.Status),
			SlotType:   string(s.SlotType),
			IsHidden:   s.IsHidden,
			Notes:      s.Notes,
			NailTechID: s.NailTechID,
		})
	}
	return &ScheduleResponse{
		Slots: slots,
		Total: len(slots),
	}
}
