package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/gleamnails/GN-BookingService/internal/domain"
)

func TestBooking_StatusTransitions(t *testing.T) {
	tests := []struct {
		status       domain.BookingStatus
		canConfirm   bool
		canCancel    bool
		canComplete  bool
		canNoShow    bool
		canResched   bool
		terminal     bool
		holdingSlots bool
	}{
		{domain.StatusPending, true, true, false, false, true, false, true},
		{domain.StatusConfirmed, false, true, true, true, true, false, true},
		{domain.StatusCompleted, false, false, false, false, false, true, false},
		{domain.StatusCancelled, false, false, false, false, false, true, false},
		{domain.StatusRescheduled, false, false, false, false, false, false, false},
		{domain.StatusNoShow, false, false, false, false, false, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &domain.Booking{Status: tt.status}
			assert.Equal(t, tt.canConfirm, b.CanBeConfirmed())
			assert.Equal(t, tt.canCancel, b.CanBeCancelled())
			assert.Equal(t, tt.canComplete, b.CanBeCompleted())
			assert.Equal(t, tt.canNoShow, b.CanBeMarkedNoShow())
			assert.Equal(t, tt.canResched, b.CanBeRescheduled())
			assert.Equal(t, tt.terminal, b.IsTerminal())
			assert.Equal(t, tt.holdingSlots, b.IsActive())
		})
	}
}

func TestDerivePaymentStatus(t *testing.T) {
	deposit := decimal.NewFromInt(500)
	total := decimal.NewFromInt(2000)

	tests := []struct {
		name string
		paid decimal.Decimal
		want domain.PaymentStatus
	}{
		{"zero paid", decimal.Zero, domain.PaymentUnpaid},
		{"below deposit", decimal.NewFromInt(499), domain.PaymentUnpaid},
		{"exactly deposit", decimal.NewFromInt(500), domain.PaymentPartial},
		{"between deposit and total", decimal.NewFromInt(1500), domain.PaymentPartial},
		{"exactly total", decimal.NewFromInt(2000), domain.PaymentPaid},
		{"over total", decimal.NewFromInt(2500), domain.PaymentPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DerivePaymentStatus(tt.paid, deposit, total)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDerivePaymentStatus_NoInvoiceYet(t *testing.T) {
	// Before invoicing the total is zero, so covering the deposit can only
	// ever reach partial.
	deposit := decimal.NewFromInt(500)
	got := domain.DerivePaymentStatus(decimal.NewFromInt(500), deposit, decimal.Zero)
	assert.Equal(t, domain.PaymentPartial, got)

	got = domain.DerivePaymentStatus(decimal.NewFromInt(5000), deposit, decimal.Zero)
	assert.Equal(t, domain.PaymentPartial, got)
}

func TestDerivePaymentStatus_RecomputesDownward(t *testing.T) {
	deposit := decimal.NewFromInt(500)
	total := decimal.NewFromInt(2000)

	// A correction from fully paid down to below the deposit lands on unpaid.
	assert.Equal(t, domain.PaymentPaid, domain.DerivePaymentStatus(total, deposit, total))
	assert.Equal(t, domain.PaymentUnpaid, domain.DerivePaymentStatus(decimal.NewFromInt(100), deposit, total))
}

func TestBooking_HasDeposit(t *testing.T) {
	assert.False(t, (&domain.Booking{PaymentStatus: domain.PaymentUnpaid}).HasDeposit())
	assert.True(t, (&domain.Booking{PaymentStatus: domain.PaymentPartial}).HasDeposit())
	assert.True(t, (&domain.Booking{PaymentStatus: domain.PaymentPaid}).HasDeposit())
	assert.False(t, (&domain.Booking{PaymentStatus: domain.PaymentRefunded}).HasDeposit())
}
