package create_slots

import (
	"time"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	slotService "github.com/gleamnails/GN-BookingService/internal/service/slots"
	"github.com/gleamnails/GN-BookingService/pkg/types"
)

// CreateSlotsRequest seeds a batch of slots for one technician.
type CreateSlotsRequest struct {
	NailTechID string      `json:"nailTechId"`
	Slots      []SlotInput `json:"slots"`
}

// SlotInput is one slot to create.
type SlotInput struct {
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM or 12-hour "2:30 PM"
	SlotType  string `json:"slotType,omitempty"`
}

// SlotResponse is one created slot.
type SlotResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Status    string `json:"status"`
	SlotType  string `json:"slotType"`
}

// CreateSlotsResponse wraps the created batch.
type CreateSlotsResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// ToServiceInputs parses and converts the payload.
func (r *CreateSlotsRequest) ToServiceInputs() ([]slotService.NewSlotInput, error) {
	inputs := make([]slotService.NewSlotInput, 0, len(r.Slots))
	for _, s := range r.Slots {
		date, err := time.Parse(domain.DateFormat, s.Date)
		if err != nil {
			return nil, err
		}
		start, err := types.NewTimeStringFromString(s.StartTime)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, slotService.NewSlotInput{
			Date:      date,
			StartTime: start,
			SlotType:  domain.SlotType(s.SlotType),
		})
	}
	return inputs, nil
}

// FromDomainSlots converts the created slots to the HTTP view.
func FromDomainSlots(list []*domain.Slot) *CreateSlotsResponse {
	slots := make([]SlotResponse, 0, len(list))
	for _, s := range list {
		slots = append(slots, SlotResponse{
			ID:        s.ID,
			Date:      s.Date.Format(domain.DateFormat),
			StartTime: s.StartTime.String(),
			Status:    string(s.Status),
			SlotType:  string(s.SlotType),
		})
	}
	return &CreateSlotsResponse{
		Slots: slots,
		Total: len(slots),
	}
}
