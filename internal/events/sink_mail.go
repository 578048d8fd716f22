package events

import (
	"context"
	"fmt"

	"github.com/gleamnails/GN-BookingService/internal/integrations/mailer"
)

// MailClient sends transactional email.
type MailClient interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// MailSink emails the customer on lifecycle transitions. Reminder mails are
// the sweep's job; this sink covers immediate confirmations only.
type MailSink struct {
	client MailClient
	log    Logger
}

// NewMailSink creates the email sink.
func NewMailSink(client MailClient, log Logger) *MailSink {
	return &MailSink{client: client, log: log}
}

// Name implements Sink.
func (s *MailSink) Name() string {
	return "mail"
}

// Handle implements Sink.
func (s *MailSink) Handle(ctx context.Context, e Event) error {
	if e.Customer == nil || e.Customer.Email == nil || *e.Customer.Email == "" {
		s.log.Info("events: no email on file for customer %s, skipping %s mail", e.Booking.CustomerID, e.Type)
		return nil
	}

	subject, body, ok := composeMail(e)
	if !ok {
		return nil
	}

	return s.client.Send(ctx, mailer.Message{
		To:      *e.Customer.Email,
		ToName:  e.Customer.Name,
		Subject: subject,
		Body:    body,
	})
}

func composeMail(e Event) (subject, body string, ok bool) {
	b := e.Booking
	switch e.Type {
	case TypeBookingCreated:
		subject = fmt.Sprintf("Booking received - %s", b.BookingCode)
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>We received your booking <b>%s</b>. Please settle the deposit of %s to confirm your appointment.</p>",
			e.Customer.Name, b.BookingCode, b.Pricing.DepositRequired.StringFixed(2))
	case TypeBookingConfirmed:
		subject = fmt.Sprintf("Booking confirmed - %s", b.BookingCode)
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Your booking <b>%s</b> is confirmed. See you soon!</p>",
			e.Customer.Name, b.BookingCode)
	case TypeBookingCancelled:
		subject = fmt.Sprintf("Booking cancelled - %s", b.BookingCode)
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Your booking <b>%s</b> has been cancelled. If this is unexpected, reply to this email.</p>",
			e.Customer.Name, b.BookingCode)
	case TypeBookingRescheduled:
		subject = fmt.Sprintf("Booking rescheduled - %s", b.BookingCode)
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Your booking <b>%s</b> has been moved to a new schedule. Check your updated appointment details.</p>",
			e.Customer.Name, b.BookingCode)
	case TypeBookingCompleted:
		subject = "Thank you for visiting Gleam Nails!"
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>Thank you for your visit (booking <b>%s</b>). We hope to see you again!</p>",
			e.Customer.Name, b.BookingCode)
	case TypePaymentUpdated:
		subject = fmt.Sprintf("Payment received - %s", b.BookingCode)
		body = fmt.Sprintf(
			"<p>Hi %s,</p><p>We recorded a payment on booking <b>%s</b>. Paid so far: %s of %s.</p>",
			e.Customer.Name, b.BookingCode, b.Pricing.PaidAmount.StringFixed(2), b.Pricing.Total.StringFixed(2))
	default:
		// Internal bookkeeping events (invoice updates, no-shows) carry no
		// customer-facing mail.
		return "", "", false
	}
	return subject, body, true
}
