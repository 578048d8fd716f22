package get_customer

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gleamnails/GN-BookingService/internal/api/handlers"
	customerService "github.com/gleamnails/GN-BookingService/internal/service/customers"
)

const msgCustomerNotFound = "customer not found"

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

// Handle GET /api/v1/customers/{customerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customerId"]

	c, err := h.service.GetByID(r.Context(), customerID)
	if err != nil {
		switch {
		case errors.Is(err, customerService.ErrCustomerNotFound):
			handlers.RespondNotFound(w, msgCustomerNotFound)
		default:
			h.logger.Error("GET /customers/%s - failed: %v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainCustomer(c))
}
