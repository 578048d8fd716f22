package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a salon client. The Stats block is derived data: it is always
// recomputed from the customer's bookings, never incremented in place.
type Customer struct {
	ID             string
	Name           string
	Phone          string
	Email          *string
	SocialHandle   *string
	ReferralSource *string
	IsActive       bool

	Stats CustomerStats

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerStats are the ledger aggregates. Pure function of the customer's
// non-cancelled bookings; safe to recompute any number of times.
type CustomerStats struct {
	TotalBookings     int
	CompletedBookings int
	TotalSpent        decimal.Decimal
	TotalTips         decimal.Decimal
	TotalDiscounts    decimal.Decimal
	LastVisit         *time.Time
	ClientType        ClientType
}

// ComputeCustomerStats derives the aggregates from the full booking set.
//   - TotalBookings counts everything except cancelled.
//   - CompletedBookings counts completed only.
//   - TotalSpent / TotalTips / TotalDiscounts sum confirmed and completed
//     bookings (cancelled and no-show excluded from money).
//   - LastVisit is the latest CompletedAt among completed bookings.
func ComputeCustomerStats(bookings []*Booking) CustomerStats {
	stats := CustomerStats{
		TotalSpent:     decimal.Zero,
		TotalTips:      decimal.Zero,
		TotalDiscounts: decimal.Zero,
		ClientType:     ClientNew,
	}

	for _, b := range bookings {
		if b.Status != StatusCancelled {
			stats.TotalBookings++
		}
		switch b.Status {
		case StatusCompleted:
			stats.CompletedBookings++
			if b.CompletedAt != nil && (stats.LastVisit == nil || b.CompletedAt.After(*stats.LastVisit)) {
				visited := *b.CompletedAt
				stats.LastVisit = &visited
			}
			fallthrough
		case StatusConfirmed:
			stats.TotalSpent = stats.TotalSpent.Add(b.Pricing.Total)
			stats.TotalTips = stats.TotalTips.Add(b.Pricing.TipAmount)
			stats.TotalDiscounts = stats.TotalDiscounts.Add(b.Pricing.DiscountAmount)
		}
	}

	if stats.CompletedBookings > 0 {
		stats.ClientType = ClientRepeat
	}
	return stats
}
