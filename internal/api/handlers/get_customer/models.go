package get_customer

import (
	"time"

	"github.com/gleamnails/GN-BookingService/internal/domain"
)

// CustomerResponse is the full customer card with the ledger aggregates.
type CustomerResponse struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Phone          string        `json:"phone"`
	Email          *string       `json:"email,omitempty"`
	SocialHandle   *string       `json:"socialHandle,omitempty"`
	ReferralSource *string       `json:"referralSource,omitempty"`
	IsActive       bool          `json:"isActive"`
	Stats          StatsResponse `json:"stats"`
	CreatedAt      string        `json:"createdAt"`
	UpdatedAt      string        `json:"updatedAt"`
}

// StatsResponse is the derived booking ledger.
type StatsResponse struct {
	ClientType        string  `json:"clientType"`
	TotalBookings     int     `json:"totalBookings"`
	CompletedBookings int     `json:"completedBookings"`
	TotalSpent        string  `json:"totalSpent"`
	TotalTips         string  `json:"totalTips"`
	TotalDiscounts    string  `json:"totalDiscounts"`
	LastVisit         *string `json:"lastVisit,omitempty"`
}

// FromDomainCustomer converts the customer to the HTTP view.
func FromDomainCustomer(c *domain.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Phone:          c.Phone,
		Email:          c.Email,
		SocialHandle:   c.SocialHandle,
		ReferralSource: c.ReferralSource,
		IsActive:       c.IsActive,
		Stats: StatsResponse{
			ClientType:        string(c.Stats.ClientType),
			TotalBookings:     c.Stats.TotalBookings,
			CompletedBookings: c.Stats.CompletedBookings,
			TotalSpent:        c.Stats.TotalSpent.StringFixed(2),
			TotalTips:         c.Stats.TotalTips.StringFixed(2),
			TotalDiscounts:    c.Stats.TotalDiscounts.StringFixed(2),
			LastVisit:         formatTimePtr(c.Stats.LastVisit),
		},
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
