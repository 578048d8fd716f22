package list_bookings

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gleamnails/GN-BookingService/internal/api/authctx"
	"github.com/gleamnails/GN-BookingService/internal/api/handlers"
	"github.com/gleamnails/GN-BookingService/internal/domain"
	bookingService "github.com/gleamnails/GN-BookingService/internal/service/bookings"
)

const (
	msgInvalidStatus = "invalid status filter"
	msgInvalidDate   = "invalid date filter, expected YYYY-MM-DD"
	msgAccessDenied  = "access denied"
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

// Handle GET /api/v1/bookings?customerId=&nailTechId=&status=&dateFrom=&dateTo=
//
// status takes a comma-separated list; dates bound CreatedAt.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := authctx.ActorFrom(r.Context())

	filter, err := parseFilter(r)
	if err != nil {
		h.logger.Warn("GET /bookings - invalid filter: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	list, err := h.service.List(r.Context(), actor, filter)
	if err != nil {
		switch {
		case errors.Is(err, bookingService.ErrAccessDenied):
			h.logger.Warn("GET /bookings - access denied for user=%s", actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("GET /bookings - failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - returned %d bookings for user=%s", len(list), actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainBookings(list))
}

func parseFilter(r *http.Request) (domain.BookingFilter, error) {
	var filter domain.BookingFilter
	q := r.URL.Query()

	if v := q.Get("customerId"); v != "" {
		filter.CustomerID = &v
	}
	if v := q.Get("nailTechId"); v != "" {
		filter.NailTechID = &v
	}
	if v := q.Get("status"); v != "" {
		for _, raw := range strings.Split(v, ",") {
			status := domain.BookingStatus(strings.TrimSpace(raw))
			if !validStatus(status) {
				return filter, errors.New(msgInvalidStatus)
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	if v := q.Get("dateFrom"); v != "" {
		t, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return filter, errors.New(msgInvalidDate)
		}
		filter.DateFrom = &t
	}
	if v := q.Get("dateTo"); v != "" {
		t, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return filter, errors.New(msgInvalidDate)
		}
		// Inclusive upper bound: the whole named day.
		end := t.AddDate(0, 0, 1)
		filter.DateTo = &end
	}
	return filter, nil
}

func validStatus(s domain.BookingStatus) bool {
	for _, v := range domain.ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}
