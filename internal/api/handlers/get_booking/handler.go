package get_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/gleamnails/GN-BookingService/internal/api/authctx"
	"github.com/gleamnails/GN-BookingService/internal/api/handlers"
	"github.com/gleamnails/GN-BookingService/internal/domain"
	bookingService "github.com/gleamnails/GN-BookingService/internal/service/bookings"
)

const (
	msgBookingNotFound = "booking not found"
	msgAuthRequired    = "authentication required to look a booking up by id"
	msgAccessDenied    = "access denied"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{idOrCode}
//
// A booking code (GN-...) is a public capability; anyone holding it may view
// the booking. Lookup by raw id is staff-only.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	idOrCode := mux.Vars(r)["idOrCode"]

	var (
		booking *domain.Booking
		err     error
	)
	if strings.HasPrefix(idOrCode, domain.BookingCodePrefix+"-") {
		booking, err = h.service.GetByCode(r.Context(), idOrCode)
	} else {
		actor, ok := authctx.ActorFrom(r.Context())
		if !ok {
			h.logger.Warn("GET /bookings/%s - anonymous id lookup", idOrCode)
			handlers.RespondUnauthorized(w, msgAuthRequired)
			return
		}
		booking, err = h.service.GetByID(r.Context(), actor, idOrCode)
	}

	if err != nil {
		switch {
		case errors.Is(err, bookingService.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/%s - not found", idOrCode)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookingService.ErrAccessDenied):
			h.logger.Warn("GET /bookings/%s - access denied", idOrCode)
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("GET /bookings/%s - failed: %v", idOrCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainBooking(booking))
}
