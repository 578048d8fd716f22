package create_booking

import (
	"errors"
	"net/http"

	"github.com/gleamnails/GN-BookingService/internal/api/handlers"
	createBooking "github.com/gleamnails/GN-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgSlotNotAvailable   = "one or more selected slots are no longer available"
	msgNailTechNotFound   = "nail tech not found"
	msgNailTechInactive   = "nail tech is not taking bookings"
	msgLocationNotServed  = "nail tech does not serve this location"
	msgSlotNotFound       = "one or more selected slots do not exist"
	msgSlotsNotSameDay    = "all slots must be on the same day"
	msgSlotsNotContiguous = "slots must be consecutive"
	msgSlotInPast         = "the selected time is already in the past"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - slot not available: tech=%s slots=%v", req.NailTechID, req.SlotIDs)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrNailTechNotFound):
			h.logger.Warn("POST /bookings - nail tech not found: tech=%s", req.NailTechID)
			handlers.RespondNotFound(w, msgNailTechNotFound)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - slot not found: tech=%s slots=%v", req.NailTechID, req.SlotIDs)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrNailTechInactive):
			h.logger.Warn("POST /bookings - nail tech inactive: tech=%s", req.NailTechID)
			handlers.RespondBadRequest(w, msgNailTechInactive)

		case errors.Is(err, createBooking.ErrLocationNotServed):
			h.logger.Warn("POST /bookings - location not served: tech=%s location=%s", req.NailTechID, req.ServiceLocation)
			handlers.RespondBadRequest(w, msgLocationNotServed)

		case errors.Is(err, createBooking.ErrSlotMismatch):
			h.logger.Warn("POST /bookings - slot mismatch: tech=%s slots=%v", req.NailTechID, req.SlotIDs)
			handlers.RespondBadRequest(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotsNotSameDay):
			h.logger.Warn("POST /bookings - slots span days: slots=%v", req.SlotIDs)
			handlers.RespondBadRequest(w, msgSlotsNotSameDay)

		case errors.Is(err, createBooking.ErrSlotsNotContiguous):
			h.logger.Warn("POST /bookings - slots not contiguous: slots=%v", req.SlotIDs)
			handlers.RespondBadRequest(w, msgSlotsNotContiguous)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings - slot in the past: slots=%v", req.SlotIDs)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - failed to create booking: tech=%s error=%v", req.NailTechID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - booking created: id=%s code=%s", result.ID, result.BookingCode)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
