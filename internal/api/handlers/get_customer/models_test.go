package get_customer_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gleamnails/GN-BookingService/internal/api/handlers/get_customer"
	"github.com/gleamnails/GN-BookingService/internal/domain"
)

func TestFromDomainCustomer(t *testing.T) {
	visited := time.Date(2026, 8, 20, 14, 0, 0, 0, time.UTC)
	email := "anna@example.com"
	c := &domain.Customer{
		ID:       "cust-1",
		Name:     "Anna Reyes",
		Phone:    "+639171234567",
		Email:    &email,
		IsActive: true,
		Stats: domain.CustomerStats{
			ClientType:        domain.ClientRepeat,
			TotalBookings:     4,
			CompletedBookings: 3,
			TotalSpent:        decimal.NewFromInt(4500),
			TotalTips:         decimal.NewFromInt(300),
			TotalDiscounts:    decimal.NewFromInt(150),
			LastVisit:         &visited,
		},
		CreatedAt: visited.Add(-30 * 24 * time.Hour),
		UpdatedAt: visited,
	}

	got := get_customer.FromDomainCustomer(c)

	assert.Equal(t, "cust-1", got.ID)
	assert.Equal(t, "repeat", got.Stats.ClientType)
	assert.Equal(t, 4, got.Stats.TotalBookings)
	assert.Equal(t, 3, got.Stats.CompletedBookings)
	assert.Equal(t, "4500.00", got.Stats.TotalSpent)
	assert.Equal(t, "300.00", got.Stats.TotalTips)
	assert.Equal(t, "150.00", got.Stats.TotalDiscounts)
	require.NotNil(t, got.Stats.LastVisit)
	assert.Equal(t, visited.Format(time.RFC3339), *got.Stats.LastVisit)
}

func TestFromDomainCustomer_NoVisitsYet(t *testing.T) {
	c := &domain.Customer{
		ID:       "cust-2",
		Name:     "New Client",
		Phone:    "+639170000000",
		IsActive: true,
		Stats: domain.CustomerStats{
			ClientType: domain.ClientNew,
			TotalSpent: decimal.Zero,
		},
	}

	got := get_customer.FromDomainCustomer(c)

	assert.Equal(t, "new", got.Stats.ClientType)
	assert.Nil(t, got.Stats.LastVisit)
	assert.Equal(t, "0.00", got.Stats.TotalSpent)
}
