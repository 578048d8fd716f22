package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gleamnails/GN-BookingService/internal/domain"
)

func TestWithinWindow(t *testing.T) {
	target := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	tolerance := 20 * time.Minute

	assert.True(t, domain.WithinWindow(target, target, tolerance))
	assert.True(t, domain.WithinWindow(target.Add(19*time.Minute), target, tolerance))
	assert.True(t, domain.WithinWindow(target.Add(-20*time.Minute), target, tolerance))
	assert.False(t, domain.WithinWindow(target.Add(21*time.Minute), target, tolerance))
	assert.False(t, domain.WithinWindow(target.Add(-2*time.Hour), target, tolerance))
}

func TestReminderSchedules(t *testing.T) {
	// Payment reminders span the first 24 hours after creation; the last one
	// is the cancellation warning.
	assert.Len(t, domain.PaymentReminderOffsets, 4)
	assert.Equal(t, 24*time.Hour, domain.PaymentReminderOffsets[domain.NotifyPaymentCancelWarn])

	assert.Len(t, domain.AppointmentReminderLeads, 2)
	assert.Equal(t, 2*time.Hour, domain.AppointmentReminderLeads[domain.NotifyAppointment2h])
}
