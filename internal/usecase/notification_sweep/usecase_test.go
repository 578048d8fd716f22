package notification_sweep_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/internal/integrations/mailer"
	"github.com/gleamnails/GN-BookingService/internal/usecase/notification_sweep"
	"github.com/gleamnails/GN-BookingService/pkg/types"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (r *fakeBookingRepo) ListWithFilter(_ context.Context, _ domain.BookingFilter) ([]*domain.Booking, error) {
	return r.bookings, nil
}

type fakeSlotRepo struct {
	slots []*domain.Slot
}

func (r *fakeSlotRepo) GetByIDs(_ context.Context, _ []string) ([]*domain.Slot, error) {
	return r.slots, nil
}

type fakeCustomerReader struct {
	email *string
}

func (r *fakeCustomerReader) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	return &domain.Customer{ID: id, Name: "Test Client", Email: r.email}, nil
}

type claimKey struct {
	bookingID string
	kind      domain.NotificationType
}

type fakeNotificationLog struct {
	claims   map[claimKey]bool
	released []claimKey
}

func newFakeNotificationLog() *fakeNotificationLog {
	return &fakeNotificationLog{claims: map[claimKey]bool{}}
}

func (l *fakeNotificationLog) Claim(_ context.Context, bookingID string, kind domain.NotificationType) (bool, error) {
	k := claimKey{bookingID, kind}
	if l.claims[k] {
		return false, nil
	}
	l.claims[k] = true
	return true, nil
}

func (l *fakeNotificationLog) Release(_ context.Context, bookingID string, kind domain.NotificationType) error {
	k := claimKey{bookingID, kind}
	delete(l.claims, k)
	l.released = append(l.released, k)
	return nil
}

type fakePruner struct {
	called bool
}

func (p *fakePruner) PruneExpired(_ context.Context) (int64, error) {
	p.called = true
	return 3, nil
}

type fakeMail struct {
	sent    []mailer.Message
	sendErr error
}

func (m *fakeMail) Send(_ context.Context, msg mailer.Message) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// ---------------------------------------------------------------------------
// Setup
// ---------------------------------------------------------------------------

type env struct {
	uc        *notification_sweep.UseCase
	log       *fakeNotificationLog
	mail      *fakeMail
	pruner    *fakePruner
	customers *fakeCustomerReader
}

func newEnv(t *testing.T, bookings []*domain.Booking, slots []*domain.Slot) *env {
	t.Helper()
	email := "client@example.com"
	e := &env{
		log:       newFakeNotificationLog(),
		mail:      &fakeMail{},
		pruner:    &fakePruner{},
		customers: &fakeCustomerReader{email: &email},
	}
	e.uc = notification_sweep.NewUseCase(
		&fakeBookingRepo{bookings: bookings},
		&fakeSlotRepo{slots: slots},
		e.customers,
		e.log,
		e.pruner,
		e.mail,
		domain.DefaultSweepTolerance,
		nil,
		nopLogger{},
	)
	return e
}

// unpaidPending is a pending unpaid booking created ago before now.
func unpaidPending(ago time.Duration) *domain.Booking {
	return &domain.Booking{
		ID:            "bk-1",
		BookingCode:   "GN-20260901001",
		CustomerID:    "cust-1",
		NailTechID:    "tech-1",
		SlotIDs:       []string{"slot-1"},
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentUnpaid,
		CreatedAt:     time.Now().Add(-ago),
	}
}

// confirmedStartingIn is a confirmed booking whose single slot starts at
// now + in, expressed in salon local time.
func confirmedStartingIn(in time.Duration) (*domain.Booking, []*domain.Slot) {
	start := time.Now().In(domain.ManilaLocation()).Add(in)
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	b := &domain.Booking{
		ID:            "bk-2",
		BookingCode:   "GN-20260901002",
		CustomerID:    "cust-1",
		NailTechID:    "tech-1",
		SlotIDs:       []string{"slot-1"},
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPartial,
		CreatedAt:     time.Now().Add(-48 * time.Hour),
	}
	slots := []*domain.Slot{{
		ID:         "slot-1",
		Date:       day,
		StartTime:  types.NewTimeString(start),
		Status:     domain.SlotConfirmed,
		NailTechID: "tech-1",
	}}
	return b, slots
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestExecute_PaymentReminderInWindow(t *testing.T) {
	e := newEnv(t, []*domain.Booking{unpaidPending(6 * time.Hour)}, nil)

	res, err := e.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Scanned)
	assert.Equal(t, 1, res.Sent)
	require.Len(t, e.mail.sent, 1)
	assert.Equal(t, "client@example.com", e.mail.sent[0].To)
	assert.Contains(t, e.mail.sent[0].Subject, "GN-20260901001")
	assert.True(t, e.pruner.called)
}

func TestExecute_OutsideWindow(t *testing.T) {
	// Created 3h ago: between the 6h/12h/23h/24h targets, nothing fires.
	e := newEnv(t, []*domain.Booking{unpaidPending(3 * time.Hour)}, nil)

	res, err := e.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, res.Sent)
	assert.Empty(t, e.mail.sent)
}

func TestExecute_AtMostOncePerKind(t *testing.T) {
	e := newEnv(t, []*domain.Booking{unpaidPending(6 * time.Hour)}, nil)

	res, err := e.uc.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Sent)

	// The next run inside the same window finds the claim taken.
	res, err = e.uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent)
	assert.Equal(t, 0, res.Failed)
	assert.Len(t, e.mail.sent, 1)
}

func TestExecute_SendFailureReleasesClaim(t *testing.T) {
	e := newEnv(t, []*domain.Booking{unpaidPending(6 * time.Hour)}, nil)
	e.mail.sendErr = errors.New("provider down")

	res, err := e.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Failed)
	require.Len(t, e.log.released, 1)

	// Provider recovers: the same window can retry because the claim is gone.
	e.mail.sendErr = nil
	res, err = e.uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
}

func TestExecute_NoEmailSkipsWithoutClaim(t *testing.T) {
	e := newEnv(t, []*domain.Booking{unpaidPending(6 * time.Hour)}, nil)
	e.customers.email = nil

	res, err := e.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, e.log.claims, "a skip must not consume the claim")

	// The email arrives while the window is still open: the reminder sends.
	email := "late@example.com"
	e.customers.email = &email
	res, err = e.uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
}

func TestExecute_AppointmentReminder(t *testing.T) {
	b, slots := confirmedStartingIn(2 * time.Hour)
	e := newEnv(t, []*domain.Booking{b}, slots)

	res, err := e.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Sent)
	require.Len(t, e.mail.sent, 1)
	assert.Contains(t, e.mail.sent[0].Subject, "See you soon")
}

func TestExecute_PaidBookingGetsNoPaymentReminder(t *testing.T) {
	b := unpaidPending(6 * time.Hour)
	b.PaymentStatus = domain.PaymentPartial
	e := newEnv(t, []*domain.Booking{b}, nil)

	res, err := e.uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent)
}
