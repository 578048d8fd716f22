package domain

import "time"

// NotificationType identifies one reminder kind. Each (booking, type) pair is
// sent at most once; the notification log enforces the dedup invariant.
type NotificationType string

const (
	// Payment reminders, offset from booking creation, for unpaid pending bookings.
	NotifyPayment6h         NotificationType = "payment_6h"
	NotifyPayment12h        NotificationType = "payment_12h"
	NotifyPayment23h        NotificationType = "payment_23h"
	NotifyPaymentCancelWarn NotificationType = "payment_24h_cancel_warning"

	// Appointment reminders, lead time before the first slot.
	NotifyAppointment24h NotificationType = "appointment_24h"
	NotifyAppointment2h  NotificationType = "appointment_2h"
)

// DefaultSweepTolerance is the window around a target instant within which
// the sweep will still attempt a send. The sweep runs on a discrete interval,
// so exact hits are impossible; past the window the notification is simply
// missed, never backfilled.
const DefaultSweepTolerance = 20 * time.Minute

// PaymentReminderOffsets maps payment reminder types to their offset from
// booking creation. The 24h entry is a cancellation warning only; unpaid
// bookings are never auto-cancelled.
var PaymentReminderOffsets = map[NotificationType]time.Duration{
	NotifyPayment6h:         6 * time.Hour,
	NotifyPayment12h:        12 * time.Hour,
	NotifyPayment23h:        23 * time.Hour,
	NotifyPaymentCancelWarn: 24 * time.Hour,
}

// AppointmentReminderLeads maps appointment reminder types to their lead time
// before the appointment start.
var AppointmentReminderLeads = map[NotificationType]time.Duration{
	NotifyAppointment24h: 24 * time.Hour,
	NotifyAppointment2h:  2 * time.Hour,
}

// WithinWindow reports whether now falls inside target ± tolerance.
func WithinWindow(now, target time.Time, tolerance time.Duration) bool {
	diff := now.Sub(target)
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
