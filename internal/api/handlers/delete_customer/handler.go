package delete_customer

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gleamnails/GN-BookingService/internal/api/handlers"
	customerService "github.com/gleamnails/GN-BookingService/internal/service/customers"
)

const (
	msgCustomerNotFound  = "customer not found"
	msgHasActiveBookings = "customer has active bookings"
)

type Handler struct {
	service CustomerService
	logger  Logger
}

func NewHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/customers/{customerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customerId"]

	if err := h.service.Delete(r.Context(), customerID); err != nil {
		switch {
		case errors.Is(err, customerService.ErrCustomerNotFound):
			handlers.RespondNotFound(w, msgCustomerNotFound)
		case errors.Is(err, customerService.ErrHasActiveBookings):
			h.logger.Warn("DELETE /customers/%s - has active bookings", customerID)
			handlers.RespondConflict(w, msgHasActiveBookings)
		default:
			h.logger.Error("DELETE /customers/%s - failed: %v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /customers/%s - deleted", customerID)
	w.WriteHeader(http.StatusNoContent)
}
