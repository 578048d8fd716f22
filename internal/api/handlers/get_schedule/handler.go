package get_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/gleamnails/GN-BookingService/internal/api/authctx"
	"github.com/gleamnails/GN-BookingService/internal/api/handlers"
	"github.com/gleamnails/GN-BookingService/internal/domain"
	slotService "github.com/gleamnails/GN-BookingService/internal/service/slots"
)

const (
	msgInvalidDateRange = "invalid date range, expected from=YYYY-MM-DD&to=YYYY-MM-DD"
	msgAuthRequired     = "authentication required"
	msgAccessDenied     = "access denied"
)

// Schedule queries default to a one week window when to is omitted.
const defaultRangeDays = 7

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

// Handle GET /api/v1/nail-techs/{techId}/schedule?from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	techID := mux.Vars(r)["techId"]

	actor, ok := authctx.ActorFrom(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgAuthRequired)
		return
	}

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

	slots, err := h.service.ListSchedule(r.Context(), actor, techID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, slotService.ErrAccessDenied):
			h.logger.Warn("GET /nail-techs/%s/schedule - access denied for user=%s", techID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, slotService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDateRange)
		default:
			h.logger.Error("GET /nail-techs/%s/schedule - failed: %v", techID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainSlots(slots))
}
