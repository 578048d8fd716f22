package update_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gleamnails/GN-BookingService/internal/api/authctx"
	"github.com/gleamnails/GN-BookingService/internal/api/handlers"
	slotService "github.com/gleamnails/GN-BookingService/internal/service/slots"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgAuthRequired       = "authentication required"
	msgSlotNotFound       = "slot not found"
	msgAccessDenied       = "access denied"
	msgSlotOccupied       = "slot is held by a booking"
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

// Handle PATCH /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	actor, ok := authctx.ActorFrom(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgAuthRequired)
		return
	}

	var req UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/%s - invalid request body: %v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.service.Update(r.Context(), actor, slotID, req.ToServiceInput())
	if err != nil {
		switch {
		case errors.Is(err, slotService.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)
		case errors.Is(err, slotService.ErrAccessDenied):
			h.logger.Warn("PATCH /slots/%s - access denied for user=%s", slotID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, slotService.ErrSlotOccupied):
			handlers.RespondConflict(w, msgSlotOccupied)
		case errors.Is(err, slotService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PATCH /slots/%s - failed: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainSlot(slot))
}
