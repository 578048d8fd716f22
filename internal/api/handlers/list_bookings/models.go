package list_bookings

import (
	"time"

	"github.com/gleamnails/GN-BookingService/internal/domain"
)

// BookingListItem is the compact row for staff listings.
type BookingListItem struct {
	ID          string   `json:"id"`
	BookingCode string   `json:"bookingCode"`
	CustomerID  string   `json:"customerId"`
	NailTechID  string   `json:"nailTechId"`
	SlotIDs     []string `json:"slotIds"`

	ServiceType     string `json:"serviceType"`
	ServiceLocation string `json:"serviceLocation"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	Total         string `json:"total"`
	PaidAmount    string `json:"paidAmount"`

	CreatedAt string `json:"createdAt"`
}

// BookingListResponse wraps the rows.
type BookingListResponse struct {
	Bookings []BookingListItem `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBookings converts domain bookings to the list view.
func FromDomainBookings(list []*domain.Booking) *BookingListResponse {
	items := make([]BookingListItem, 0, len(list))
	for _, b := range list {
		items = append(items, BookingListItem{
			ID:              b.ID,
			BookingCode:     b.BookingCode,
			CustomerID:      b.CustomerID,
			NailTechID:      b.NailTechID,
			SlotIDs:         b.SlotIDs,
			ServiceType:     b.Service.Type,
			ServiceLocation: string(b.Service.Location),
			Status:          string(b.Status),
			PaymentStatus:   string(b.PaymentStatus),
			Total:           b.Pricing.Total.StringFixed(2),
			PaidAmount:      b.Pricing.PaidAmount.StringFixed(2),
			CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return &BookingListResponse{
		Bookings: items,
		Total:    len(items),
	}
}
