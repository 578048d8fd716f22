package update_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gleamnails/GN-BookingService/internal/api/authctx"
	"github.com/gleamnails/GN-BookingService/internal/api/handlers"
	"github.com/gleamnails/GN-BookingService/internal/domain"
	bookingService "github.com/gleamnails/GN-BookingService/internal/service/bookings"
	rescheduleBooking "github.com/gleamnails/GN-BookingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgUnknownAction      = "unknown action"
	msgBookingNotFound    = "booking not found"
	msgAccessDenied       = "access denied"
	msgPaymentRequired    = "deposit payment required to confirm"
	msgInvalidTransition  = "booking status does not allow this action"
	msgReasonRequired     = "a reason is required for this action"
	msgSlotNotAvailable   = "one or more selected slots are no longer available"
	msgPaymentSection     = "payment section is required for update_payment"
	msgInvoiceSection     = "invoice section is required for upsert_invoice"
	msgNotesSection       = "notes section is required for update_notes"
	msgSlotsRequired      = "newSlotIds is required for reschedule_to"
)

type Handler struct {
	service    BookingService
	reschedule RescheduleUseCase
	logger     Logger
}

func NewHandler(service BookingService, reschedule RescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		service:    service,
		reschedule: reschedule,
		logger:     logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	actor, _ := authctx.ActorFrom(r.Context())

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/%s - invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var (
		booking   *domain.Booking
		quotation *domain.Quotation
		err       error
	)

	switch req.Action {
	case ActionConfirm:
		booking, err = h.service.Confirm(r.Context(), actor, bookingID, false)

	case ActionManualConfirm:
		booking, err = h.service.Confirm(r.Context(), actor, bookingID, true)

	case ActionCancel:
		booking, err = h.service.Cancel(r.Context(), actor, bookingID, req.AdminOverride, derefReason(req.Reason))

	case ActionReschedule:
		booking, err = h.service.MarkRescheduled(r.Context(), actor, bookingID, derefReason(req.Reason))

	case ActionRescheduleTo:
		if len(req.NewSlotIDs) == 0 {
			handlers.RespondBadRequest(w, msgSlotsRequired)
			return
		}
		booking, err = h.reschedule.Execute(r.Context(), actor, &rescheduleBooking.Request{
			BookingID:  bookingID,
			NewSlotIDs: req.NewSlotIDs,
			Reason:     req.Reason,
		})

	case ActionUpdatePayment:
		if req.Payment == nil {
			handlers.RespondBadRequest(w, msgPaymentSection)
			return
		}
		booking, err = h.service.UpdatePayment(r.Context(), actor, bookingID, req.Payment.toInput())

	case ActionMarkCompleted:
		booking, err = h.service.MarkCompleted(r.Context(), actor, bookingID)

	case ActionMarkNoShow:
		booking, err = h.service.MarkNoShow(r.Context(), actor, bookingID, derefReason(req.Reason))

	case ActionUpsertInvoice:
		if req.Invoice == nil {
			handlers.RespondBadRequest(w, msgInvoiceSection)
			return
		}
		quotation, err = h.service.UpsertInvoice(r.Context(), actor, bookingID, req.Invoice.toInput())

	case ActionUpdateNotes:
		if req.Notes == nil {
			handlers.RespondBadRequest(w, msgNotesSection)
			return
		}
		booking, err = h.service.UpdateNotes(r.Context(), actor, bookingID, req.Notes.toInput())

	default:
		h.logger.Warn("PATCH /bookings/%s - unknown action %q", bookingID, req.Action)
		handlers.RespondBadRequest(w, msgUnknownAction)
		return
	}

	if err != nil {
		h.respondError(w, bookingID, req.Action, err)
		return
	}

	h.logger.Info("PATCH /bookings/%s - action=%s applied by user=%s", bookingID, req.Action, actor.UserID)
	if quotation != nil {
		handlers.RespondJSON(w, http.StatusOK, FromDomainQuotation(quotation))
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromDomainBooking(booking))
}

func (h *Handler) respondError(w http.ResponseWriter, bookingID, action string, err error) {
	switch {
	case errors.Is(err, bookingService.ErrBookingNotFound),
		errors.Is(err, rescheduleBooking.ErrBookingNotFound):
		h.logger.Warn("PATCH /bookings/%s - not found (action=%s)", bookingID, action)
		handlers.RespondNotFound(w, msgBookingNotFound)

	case errors.Is(err, bookingService.ErrAccessDenied),
		errors.Is(err, rescheduleBooking.ErrAccessDenied):
		h.logger.Warn("PATCH /bookings/%s - access denied (action=%s)", bookingID, action)
		handlers.RespondForbidden(w, msgAccessDenied)

	case errors.Is(err, bookingService.ErrPaymentRequired):
		h.logger.Warn("PATCH /bookings/%s - deposit missing", bookingID)
		handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentRequired)

	case errors.Is(err, bookingService.ErrReasonRequired):
		h.logger.Warn("PATCH /bookings/%s - reason missing (action=%s)", bookingID, action)
		handlers.RespondBadRequest(w, msgReasonRequired)

	case errors.Is(err, bookingService.ErrCannotConfirm),
		errors.Is(err, bookingService.ErrCannotCancel),
		errors.Is(err, bookingService.ErrCannotReschedule),
		errors.Is(err, bookingService.ErrCannotComplete),
		errors.Is(err, bookingService.ErrCannotMarkNoShow),
		errors.Is(err, bookingService.ErrPaymentLocked),
		errors.Is(err, bookingService.ErrInvoiceNotAllowed),
		errors.Is(err, rescheduleBooking.ErrCannotReschedule):
		h.logger.Warn("PATCH /bookings/%s - invalid transition (action=%s): %v", bookingID, action, err)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
		h.logger.Warn("PATCH /bookings/%s - slot not available (action=%s)", bookingID, action)
		handlers.RespondConflict(w, msgSlotNotAvailable)

	case errors.Is(err, rescheduleBooking.ErrSlotNotFound),
		errors.Is(err, rescheduleBooking.ErrSlotMismatch),
		errors.Is(err, rescheduleBooking.ErrSlotsNotSameDay),
		errors.Is(err, rescheduleBooking.ErrSlotsNotContiguous),
		errors.Is(err, rescheduleBooking.ErrSlotInPast),
		errors.Is(err, rescheduleBooking.ErrInvalidInput),
		errors.Is(err, bookingService.ErrInvalidAmount),
		errors.Is(err, bookingService.ErrInvalidInput):
		h.logger.Warn("PATCH /bookings/%s - invalid input (action=%s): %v", bookingID, action, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("PATCH /bookings/%s - failed (action=%s): %v", bookingID, action, err)
		handlers.RespondInternalError(w)
	}
}

func derefReason(reason *string) string {
	if reason == nil {
		return ""
	}
	return *reason
}
