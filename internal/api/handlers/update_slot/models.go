package update_slot

import (
	"github.com/gleamnails/GN-BookingService/internal/domain"
	slotService "github.com/gleamnails/GN-BookingService/internal/service/slots"
)

// UpdateSlotRequest carries slot management edits. Omitted fields are left
// unchanged.
type UpdateSlotRequest struct {
	Status   *string `json:"status,omitempty"`
	IsHidden *bool   `json:"isHidden,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// SlotResponse is the slot after the edit.
type SlotResponse struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	Status     string  `json:"status"`
	SlotType   string  `json:"slotType"`
	IsHidden   bool    `json:"isHidden"`
	Notes      *string `json:"notes,omitempty"`
	NailTechID string  `json:"nailTechId"`
}

// ToServiceInput converts the payload.
func (r *UpdateSlotRequest) ToServiceInput() slotService.UpdateInput {
	in := slotService.UpdateInput{
		IsHidden: r.IsHidden,
		Notes:    r.Notes,
	}
	if r.Status != nil {
		status := domain.SlotStatus(*r.Status)
		in.Status = &status
	}
	return in
}

// FromDomainSlot converts the slot to the HTTP view.
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:         s.ID,
		Date:       s.Date.Format(domain.DateFormat),
		StartTime:  s.StartTime.String(),
		Status:     string(s.Status),
		SlotType:   string(s.SlotType),
		IsHidden:   s.IsHidden,
		Notes:      s.Notes,
		NailTechID: s.NailTechID,
	}
}
