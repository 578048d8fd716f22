package create_slots

import (
	"errors"
	"net/http"

	"github.com/gleamnails/GN-BookingService/internal/api/handlers"
	slotService "github.com/gleamnails/GN-BookingService/internal/service/slots"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgNailTechNotFound   = "nail tech not found"
	msgDuplicateSlot      = "a slot already exists at one of these times"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	inputs, err := req.ToServiceInputs()
	if err != nil {
		h.logger.Warn("POST /slots - failed to parse slots: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	created, err := h.service.CreateBatch(r.Context(), req.NailTechID, inputs)
	if err != nil {
		switch {
		case errors.Is(err, slotService.ErrNailTechNotFound):
			h.logger.Warn("POST /slots - nail tech not found: tech=%s", req.NailTechID)
			handlers.RespondNotFound(w, msgNailTechNotFound)
		case errors.Is(err, slotService.ErrDuplicateSlot):
			h.logger.Warn("POST /slots - duplicate slot: tech=%s", req.NailTechID)
			handlers.RespondConflict(w, msgDuplicateSlot)
		case errors.Is(err, slotService.ErrInvalidInput):
			h.logger.Warn("POST /slots - invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /slots - failed: tech=%s error=%v", req.NailTechID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - created %d slots for tech=%s", len(created), req.NailTechID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainSlots(created))
}
