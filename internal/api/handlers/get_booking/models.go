package get_booking

import (
	"time"

	"github.com/gleamnails/GN-BookingService/internal/domain"
)

// BookingResponse is the full booking view.
type BookingResponse struct {
	ID          string   `json:"id"`
	BookingCode string   `json:"bookingCode"`
	CustomerID  string   `json:"customerId"`
	NailTechID  string   `json:"nailTechId"`
	SlotIDs     []string `json:"slotIds"`

	ServiceType     string `json:"serviceType"`
	ServiceLocation string `json:"serviceLocation"`
	ClientType      string `json:"clientType"`

	Status        string  `json:"status"`
	StatusReason  *string `json:"statusReason,omitempty"`
	PaymentStatus string  `json:"paymentStatus"`

	Total           string `json:"total"`
	DepositRequired string `json:"depositRequired"`
	PaidAmount      string `json:"paidAmount"`
	TipAmount       string `json:"tipAmount"`
	DiscountAmount  string `json:"discountAmount"`

	PaymentMethod *string `json:"paymentMethod,omitempty"`
	DepositPaidAt *string `json:"depositPaidAt,omitempty"`
	FullyPaidAt   *string `json:"fullyPaidAt,omitempty"`
	ProofRef      *string `json:"proofRef,omitempty"`

	QuotationID  *string `json:"quotationId,omitempty"`
	InvoiceTotal string  `json:"invoiceTotal"`

	ClientNotes  *string  `json:"clientNotes,omitempty"`
	AdminNotes   *string  `json:"adminNotes,omitempty"`
	ClientPhotos []string `json:"clientPhotos,omitempty"`

	ConfirmedAt *string `json:"confirmedAt,omitempty"`
	CompletedAt *string `json:"completedAt,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// FromDomainBooking converts a domain booking to the HTTP view.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		BookingCode:     b.BookingCode,
		CustomerID:      b.CustomerID,
		NailTechID:      b.NailTechID,
		SlotIDs:         b.SlotIDs,
		ServiceType:     b.Service.Type,
		ServiceLocation: string(b.Service.Location),
		ClientType:      string(b.Service.ClientType),
		Status:          string(b.Status),
		StatusReason:    b.StatusReason,
		PaymentStatus:   string(b.PaymentStatus),
		Total:           b.Pricing.Total.StringFixed(2),
		DepositRequired: b.Pricing.DepositRequired.StringFixed(2),
		PaidAmount:      b.Pricing.PaidAmount.StringFixed(2),
		TipAmount:       b.Pricing.TipAmount.StringFixed(2),
		DiscountAmount:  b.Pricing.DiscountAmount.StringFixed(2),
		PaymentMethod:   b.Payment.Method,
		DepositPaidAt:   formatTimePtr(b.Payment.DepositPaidAt),
		FullyPaidAt:     formatTimePtr(b.Payment.FullyPaidAt),
		ProofRef:        b.Payment.ProofRef,
		QuotationID:     b.Invoice.QuotationID,
		InvoiceTotal:    b.Invoice.Total.StringFixed(2),
		ClientNotes:     b.ClientNotes,
		AdminNotes:      b.AdminNotes,
		ClientPhotos:    b.ClientPhotos,
		ConfirmedAt:     formatTimePtr(b.ConfirmedAt),
		CompletedAt:     formatTimePtr(b.CompletedAt),
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
