package update_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	bookingService "github.com/gleamnails/GN-BookingService/internal/service/bookings"
)

// Booking actions accepted by the PATCH endpoint.
const (
	ActionConfirm       = "confirm"
	ActionManualConfirm = "manual_confirm"
	ActionCancel        = "cancel"
	ActionReschedule    = "reschedule"
	ActionRescheduleTo  = "reschedule_to"
	ActionUpdatePayment = "update_payment"
	ActionMarkCompleted = "mark_completed"
	ActionMarkNoShow    = "mark_no_show"
	ActionUpsertInvoice = "upsert_invoice"
	ActionUpdateNotes   = "update_notes"
)

// UpdateBookingRequest is the PATCH payload. Action selects the transition;
// only the matching section is read.
type UpdateBookingRequest struct {
	Action string `json:"action"`

	Reason        *string  `json:"reason,omitempty"`
	AdminOverride bool     `json:"adminOverride,omitempty"`
	NewSlotIDs    []string `json:"newSlotIds,omitempty"`

	Payment *PaymentSection `json:"payment,omitempty"`
	Invoice *InvoiceSection `json:"invoice,omitempty"`
	Notes   *NotesSection   `json:"notes,omitempty"`
}

// PaymentSection carries the update_payment fields.
type PaymentSection struct {
	PaidAmount     *decimal.Decimal `json:"paidAmount,omitempty"`
	TipAmount      *decimal.Decimal `json:"tipAmount,omitempty"`
	Method         *string          `json:"method,omitempty"`
	ProofRef       *string          `json:"proofRef,omitempty"`
	MarkRefunded   bool             `json:"markRefunded,omitempty"`
	AllowCompleted bool             `json:"allowCompleted,omitempty"`
}

// InvoiceSection carries the upsert_invoice fields.
type InvoiceSection struct {
	Items          []InvoiceItem    `json:"items"`
	DiscountRate   *decimal.Decimal `json:"discountRate,omitempty"`
	DiscountAmount *decimal.Decimal `json:"discountAmount,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
}

// InvoiceItem is one invoice line as submitted.
type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// NotesSection carries the update_notes fields.
type NotesSection struct {
	ClientNotes  *string  `json:"clientNotes,omitempty"`
	AdminNotes   *string  `json:"adminNotes,omitempty"`
	ClientPhotos []string `json:"clientPhotos,omitempty"`
}

func (s *PaymentSection) toInput() bookingService.PaymentInput {
	return bookingService.PaymentInput{
		PaidAmount:     s.PaidAmount,
		TipAmount:      s.TipAmount,
		Method:         s.Method,
		ProofRef:       s.ProofRef,
		MarkRefunded:   s.MarkRefunded,
		AllowCompleted: s.AllowCompleted,
	}
}

func (s *InvoiceSection) toInput() bookingService.InvoiceInput {
	items := make([]bookingService.InvoiceItemInput, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, bookingService.InvoiceItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return bookingService.InvoiceInput{
		Items:          items,
		DiscountRate:   s.DiscountRate,
		DiscountAmount: s.DiscountAmount,
		Notes:          s.Notes,
	}
}

func (s *NotesSection) toInput() bookingService.NotesInput {
	return bookingService.NotesInput{
		ClientNotes:  s.ClientNotes,
		AdminNotes:   s.AdminNotes,
		ClientPhotos: s.ClientPhotos,
	}
}

// BookingResponse is the post-transition booking view.
type BookingResponse struct {
	ID          string   `json:"id"`
	BookingCode string   `json:"bookingCode"`
	CustomerID  string   `json:"customerId"`
	NailTechID  string   `json:"nailTechId"`
	SlotIDs     []string `json:"slotIds"`

	Status        string  `json:"status"`
	StatusReason  *string `json:"statusReason,omitempty"`
	PaymentStatus string  `json:"paymentStatus"`

	Total           string `json:"total"`
	DepositRequired string `json:"depositRequired"`
	PaidAmount      string `json:"paidAmount"`
	TipAmount       string `json:"tipAmount"`
	DiscountAmount  string `json:"discountAmount"`

	ConfirmedAt *string `json:"confirmedAt,omitempty"`
	CompletedAt *string `json:"completedAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt"`
}

// QuotationResponse is the invoice view returned by upsert_invoice.
type QuotationResponse struct {
	ID             string          `json:"id"`
	BookingID      string          `json:"bookingId"`
	Items          []QuotationItem `json:"items"`
	Subtotal       string          `json:"subtotal"`
	DiscountRate   string          `json:"discountRate"`
	DiscountAmount string          `json:"discountAmount"`
	SqueezeInFee   string          `json:"squeezeInFee"`
	TotalAmount    string          `json:"totalAmount"`
	Notes          *string         `json:"notes,omitempty"`
}

// QuotationItem is one invoice line in the response.
type QuotationItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	LineTotal   string `json:"lineTotal"`
}

// FromDomainBooking converts a domain booking to the HTTP view.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		BookingCode:     b.BookingCode,
		CustomerID:      b.CustomerID,
		NailTechID:      b.NailTechID,
		SlotIDs:         b.SlotIDs,
		Status:          string(b.Status),
		StatusReason:    b.StatusReason,
		PaymentStatus:   string(b.PaymentStatus),
		Total:           b.Pricing.Total.StringFixed(2),
		DepositRequired: b.Pricing.DepositRequired.StringFixed(2),
		PaidAmount:      b.Pricing.PaidAmount.StringFixed(2),
		TipAmount:       b.Pricing.TipAmount.StringFixed(2),
		DiscountAmount:  b.Pricing.DiscountAmount.StringFixed(2),
		ConfirmedAt:     formatTimePtr(b.ConfirmedAt),
		CompletedAt:     formatTimePtr(b.CompletedAt),
		UpdatedAt:       b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// FromDomainQuotation converts a domain quotation to the HTTP view.
func FromDomainQuotation(q *domain.Quotation) *QuotationResponse {
	items := make([]QuotationItem, 0, len(q.Items))
	for _, item := range q.Items {
		items = append(items, QuotationItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			LineTotal:   item.LineTotal.StringFixed(2),
		})
	}
	return &QuotationResponse{
		ID:             q.ID,
		BookingID:      q.BookingID,
		Items:          items,
		Subtotal:       q.Subtotal.StringFixed(2),
		DiscountRate:   q.DiscountRate.String(),
		DiscountAmount: q.DiscountAmount.StringFixed(2),
		SqueezeInFee:   q.SqueezeInFee.StringFixed(2),
		TotalAmount:    q.TotalAmount.StringFixed(2),
		Notes:          q.Notes,
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
