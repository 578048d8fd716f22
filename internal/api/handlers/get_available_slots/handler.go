package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/gleamnails/GN-BookingService/internal/api/handlers"
	"github.com/gleamnails/GN-BookingService/internal/domain"
	slotService "github.com/gleamnails/GN-BookingService/internal/service/slots"
)

const (
	msgInvalidDateRange = "invalid date range, expected from=YYYY-MM-DD&to=YYYY-MM-DD"
	msgNailTechNotFound = "nail tech not found"
)

// Availability queries default to a two week window when to is omitted.
const defaultRangeDays = 14

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

// Handle GET /api/v1/nail-techs/{techId}/available-slots?from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	techID := mux.Vars(r)["techId"]
	q := r.URL.Query()

	from := time.Now().In(domain.ManilaLocation())
	if v := q.Get("from"); v != "" {
		parsed, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDateRange)
			return
		}
		from = parsed
	}
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)

	to := from.AddDate(0, 0, defaultRangeDays)
	if v := q.Get("to"); v != "" {
		parsed, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDateRange)
			return
		}
		to = parsed
	}

	slots, err := h.service.ListAvailability(r.Context(), techID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, slotService.ErrNailTechNotFound):
			h.logger.Warn("GET /nail-techs/%s/available-slots - nail tech not found", techID)
			handlers.RespondNotFound(w, msgNailTechNotFound)
		case errors.Is(err, slotService.ErrInvalidInput):
			h.logger.Warn("GET /nail-techs/%s/available-slots - invalid range: %v", techID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)
		default:
			h.logger.Error("GET /nail-techs/%s/available-slots - failed: %v", techID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainSlots(slots))
}
