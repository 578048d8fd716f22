// Package notification_sweep is the periodic reminder scan. Each run looks
// at every pending and confirmed booking, finds reminders whose target
// instant falls within the tolerance window around now, and sends each one
// at most once. Missed windows are never backfilled; the sweep is advisory
// and never cancels a booking.
package notification_sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/internal/integrations/mailer"
	"github.com/gleamnails/GN-BookingService/pkg/metrics"
)

// UseCase runs one reminder sweep per invocation.
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	customers    CustomerReader
	log          NotificationLog
	rateLimits   RateLimitPruner
	mail         MailClient
	timeProvider TimeProvider
	tolerance    time.Duration
	m            *metrics.Metrics // optional
	logger       Logger
}

// NewUseCase creates the sweep. A zero tolerance falls back to the default
// window. Metrics may be nil when instrumentation is disabled.
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	customers CustomerReader,
	log NotificationLog,
	rateLimits RateLimitPruner,
	mail MailClient,
	tolerance time.Duration,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	if tolerance <= 0 {
		tolerance = domain.DefaultSweepTolerance
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		customers:    customers,
		log:          log,
		rateLimits:   rateLimits,
		mail:         mail,
		timeProvider: &RealTimeProvider{},
		tolerance:    tolerance,
		m:            m,
		logger:       logger,
	}
}

// Result summarizes one sweep run.
type Result struct {
	Scanned int
	Sent    int
	Failed  int
	Skipped int
}

// Execute runs one sweep.
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	now := uc.timeProvider.Now().In(domain.ManilaLocation())
	uc.logger.Info("NotificationSweep: starting at %s", now.Format(time.RFC3339))

	bookings, err := uc.bookingRepo.ListWithFilter(ctx, domain.BookingFilter{
		Statuses: []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed},
	})
	if err != nil {
		uc.logger.Error("NotificationSweep: failed to list bookings: %v", err)
		uc.countRun("error")
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	result := &Result{Scanned: len(bookings)}
	for _, b := range bookings {
		uc.sweepBooking(ctx, b, now, result)
	}

	// Housekeeping: expired rate-limit windows ride along with the sweep.
	if pruned, err := uc.rateLimits.PruneExpired(ctx); err != nil {
		uc.logger.Warn("NotificationSweep: rate limit prune failed: %v", err)
	} else if pruned > 0 {
		uc.logger.Info("NotificationSweep: pruned %d expired rate limit windows", pruned)
	}

	uc.logger.Info("NotificationSweep: done scanned=%d sent=%d failed=%d skipped=%d",
		result.Scanned, result.Sent, result.Failed, result.Skipped)
	uc.countRun("ok")
	return result, nil
}

func (uc *UseCase) sweepBooking(ctx context.Context, b *domain.Booking, now time.Time, result *Result) {
	// Payment reminders: pending bookings that have not paid the deposit,
	// offset from booking creation.
	if b.Status == domain.StatusPending && b.PaymentStatus == domain.PaymentUnpaid {
		for kind, offset := range domain.PaymentReminderOffsets {
			target := b.CreatedAt.Add(offset)
			if domain.WithinWindow(now, target, uc.tolerance) {
				uc.attempt(ctx, b, kind, result)
			}
		}
	}

	// Appointment reminders: confirmed bookings, lead time before the first
	// slot's start in salon local time.
	if b.Status == domain.StatusConfirmed {
		start, err := uc.appointmentStart(ctx, b)
		if err != nil {
			uc.logger.Warn("NotificationSweep: cannot resolve start for booking id=%s: %v", b.ID, err)
			return
		}
		for kind, lead := range domain.AppointmentReminderLeads {
			target := start.Add(-lead)
			if domain.WithinWindow(now, target, uc.tolerance) {
				uc.attempt(ctx, b, kind, result)
			}
		}
	}
}

// attempt sends one reminder at most once. The claim is taken before the
// send; a provider failure releases it so a later run still inside the
// window may retry.
func (uc *UseCase) attempt(ctx context.Context, b *domain.Booking, kind domain.NotificationType, result *Result) {
	customer, err := uc.customers.GetByID(ctx, b.CustomerID)
	if err != nil {
		uc.logger.Warn("NotificationSweep: failed to load customer=%s for booking id=%s: %v", b.CustomerID, b.ID, err)
		result.Failed++
		uc.countSend(kind, "error")
		return
	}
	if customer.Email == nil || *customer.Email == "" {
		// No claim taken: if an email lands while the window is still open,
		// a later run can pick it up.
		uc.logger.Warn("NotificationSweep: no email for customer=%s, skipping %s on booking id=%s", b.CustomerID, kind, b.ID)
		result.Skipped++
		uc.countSend(kind, "skipped")
		return
	}

	claimed, err := uc.log.Claim(ctx, b.ID, kind)
	if err != nil {
		uc.logger.Error("NotificationSweep: claim failed for booking id=%s type=%s: %v", b.ID, kind, err)
		result.Failed++
		uc.countSend(kind, "error")
		return
	}
	if !claimed {
		return
	}

	msg := composeReminder(b, customer, kind)
	if err := uc.mail.Send(ctx, msg); err != nil {
		uc.logger.Error("NotificationSweep: send failed for booking id=%s type=%s: %v", b.ID, kind, err)
		if relErr := uc.log.Release(ctx, b.ID, kind); relErr != nil {
			uc.logger.Error("NotificationSweep: release failed for booking id=%s type=%s: %v", b.ID, kind, relErr)
		}
		result.Failed++
		uc.countSend(kind, "error")
		return
	}

	uc.logger.Info("NotificationSweep: sent %s for booking id=%s code=%s", kind, b.ID, b.BookingCode)
	result.Sent++
	uc.countSend(kind, "ok")
}

// appointmentStart resolves the earliest slot start in salon local time.
func (uc *UseCase) appointmentStart(ctx context.Context, b *domain.Booking) (time.Time, error) {
	slots, err := uc.slotRepo.GetByIDs(ctx, b.SlotIDs)
	if err != nil {
		return time.Time{}, err
	}
	if len(slots) == 0 {
		return time.Time{}, fmt.Errorf("booking has no slots")
	}
	// Slots arrive ordered by date and start time.
	return slots[0].StartsAt()
}

func (uc *UseCase) countRun(outcome string) {
	if uc.m != nil {
		uc.m.SweepRunsTotal.WithLabelValues(outcome).Inc()
	}
}

func (uc *UseCase) countSend(kind domain.NotificationType, outcome string) {
	if uc.m != nil {
		uc.m.NotificationsSentTotal.WithLabelValues(string(kind), outcome).Inc()
	}
}

func composeReminder(b *domain.Booking, c *domain.Customer, kind domain.NotificationType) mailer.Message {
	var subject, body string
	switch kind {
	case domain.NotifyPayment6h, domain.NotifyPayment12h, domain.NotifyPayment23h:
		subject = fmt.Sprintf("Payment reminder - %s", b.BookingCode)
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Your booking <b>%s</b> is waiting for its deposit of %s. Settle it to lock in your appointment.</p>",
			c.Name, b.BookingCode, b.Pricing.DepositRequired.StringFixed(2))
	case domain.NotifyPaymentCancelWarn:
		subject = fmt.Sprintf("Action needed - %s", b.BookingCode)
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>We still have no deposit for booking <b>%s</b>. Unpaid bookings may be released to other clients, so please settle %s soon.</p>",
			c.Name, b.BookingCode, b.Pricing.DepositRequired.StringFixed(2))
	case domain.NotifyAppointment24h:
		subject = fmt.Sprintf("See you tomorrow - %s", b.BookingCode)
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>A reminder that your appointment <b>%s</b> is tomorrow. See you then!</p>",
			c.Name, b.BookingCode)
	case domain.NotifyAppointment2h:
		subject = fmt.Sprintf("See you soon - %s", b.BookingCode)
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Your appointment <b>%s</b> starts in about two hours.</p>",
			c.Name, b.BookingCode)
	}
	return mailer.Message{
		To:      *c.Email,
		ToName:  c.Name,
		Subject: subject,
		Body:    body,
	}
}
