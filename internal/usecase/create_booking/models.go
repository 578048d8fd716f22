package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gleamnails/GN-BookingService/internal/domain"
)

// Request is the public booking-form submission.
type Request struct {
	NailTechID      string
	SlotIDs         []string
	ServiceType     string
	ServiceLocation domain.ServiceLocation

	CustomerName   string
	CustomerPhone  string
	CustomerEmail  *string
	SocialHandle   *string
	ReferralSource *string

	ClientNotes *string
}

// Response is the created booking as returned to the form.
type Response struct {
	ID          string
	BookingCode string
	CustomerID  string
	NailTechID  string
	SlotIDs     []string

	ServiceType     string
	ServiceLocation domain.ServiceLocation
	ClientType      domain.ClientType

	Status          domain.BookingStatus
	PaymentStatus   domain.PaymentStatus
	DepositRequired decimal.Decimal

	CreatedAt time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		BookingCode:     b.BookingCode,
		CustomerID:      b.CustomerID,
		NailTechID:      b.NailTechID,
		SlotIDs:         b.SlotIDs,
		ServiceType:     b.Service.Type,
		ServiceLocation: b.Service.Location,
		ClientType:      b.Service.ClientType,
		Status:          b.Status,
		PaymentStatus:   b.PaymentStatus,
		DepositRequired: b.Pricing.DepositRequired,
		CreatedAt:       b.CreatedAt,
	}
}
