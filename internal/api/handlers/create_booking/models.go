package create_booking

import (
	"time"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	createBooking "github.com/gleamnails/GN-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest is the public booking-form payload.
type CreateBookingRequest struct {
	NailTechID      string   `json:"nailTechId"`
	SlotIDs         []string `json:"slotIds"`
	ServiceType     string   `json:"serviceType"`
	ServiceLocation string   `json:"serviceLocation"` // "studio" | "home"

	CustomerName   string  `json:"customerName"`
	CustomerPhone  string  `json:"customerPhone"`
	CustomerEmail  *string `json:"customerEmail,omitempty"`
	SocialHandle   *string `json:"socialHandle,omitempty"`
	ReferralSource *string `json:"referralSource,omitempty"`

	ClientNotes *string `json:"clientNotes,omitempty"`
}

// BookingCreatedResponse is the form's confirmation payload.
type BookingCreatedResponse struct {
	ID              string   `json:"id"`
	BookingCode     string   `json:"bookingCode"`
	CustomerID      string   `json:"customerId"`
	NailTechID      string   `json:"nailTechId"`
	SlotIDs         []string `json:"slotIds"`
	ServiceType     string   `json:"serviceType"`
	ServiceLocation string   `json:"serviceLocation"`
	ClientType      string   `json:"clientType"`
	Status          string   `json:"status"`
	PaymentStatus   string   `json:"paymentStatus"`
	DepositRequired string   `json:"depositRequired"`
	CreatedAt       string   `json:"createdAt"`
}

// ToUseCaseRequest converts the HTTP payload to the usecase model.
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		NailTechID:      r.NailTechID,
		SlotIDs:         r.SlotIDs,
		ServiceType:     r.ServiceType,
		ServiceLocation: domain.ServiceLocation(r.ServiceLocation),
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerEmail:   r.CustomerEmail,
		SocialHandle:    r.SocialHandle,
		ReferralSource:  r.ReferralSource,
		ClientNotes:     r.ClientNotes,
	}
}

// FromUseCaseResponse converts the usecase result to the HTTP response.
func FromUseCaseResponse(resp *createBooking.Response) *BookingCreatedResponse {
	return &BookingCreatedResponse{
		ID:              resp.ID,
		BookingCode:     resp.BookingCode,
		CustomerID:      resp.CustomerID,
		NailTechID:      resp.NailTechID,
		SlotIDs:         resp.SlotIDs,
		ServiceType:     resp.ServiceType,
		ServiceLocation: string(resp.ServiceLocation),
		ClientType:      string(resp.ClientType),
		Status:          string(resp.Status),
		PaymentStatus:   string(resp.PaymentStatus),
		DepositRequired: resp.DepositRequired.StringFixed(2),
		CreatedAt:       resp.CreatedAt.UTC().Format(time.RFC3339),
	}
}
