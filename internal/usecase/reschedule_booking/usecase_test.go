package reschedule_booking_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/internal/events"
	bookingRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/booking"
	slotRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/slot"
	"github.com/gleamnails/GN-BookingService/internal/usecase/reschedule_booking"
	"github.com/gleamnails/GN-BookingService/pkg/types"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeBookingRepo struct {
	booking *domain.Booking
	updated *domain.Booking
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	if r.booking == nil || r.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *r.booking
	return &copied, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *domain.Booking) error {
	copied := *b
	r.updated = &copied
	return nil
}

type fakeSlotRepo struct {
	day           []*domain.Slot
	claimed       []string
	claimedAs     domain.SlotStatus
	released      [][]string
	conflictErr   error
	releaseCalled bool
}

func (r *fakeSlotRepo) GetByIDs(_ context.Context, ids []string) ([]*domain.Slot, error) {
	var out []*domain.Slot
	for _, s := range r.day {
		for _, id := range ids {
			if s.ID == id {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) ListByRange(_ context.Context, _ domain.SlotRangeFilter) ([]*domain.Slot, error) {
	return r.day, nil
}

func (r *fakeSlotRepo) TransitionStatus(_ context.Context, ids []string, _ string, _, to domain.SlotStatus) error {
	if r.conflictErr != nil {
		return r.conflictErr
	}
	r.claimed = append(r.claimed, ids...)
	r.claimedAs = to
	return nil
}

func (r *fakeSlotRepo) Release(_ context.Context, ids []string) error {
	r.releaseCalled = true
	r.released = append(r.released, ids)
	return nil
}

type fakeCustomerReader struct{}

func (fakeCustomerReader) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	return &domain.Customer{ID: id, Name: "Test Client"}, nil
}

type fakeEmitter struct {
	events []events.Event
}

func (f *fakeEmitter) Emit(e events.Event) { f.events = append(f.events, e) }

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// ---------------------------------------------------------------------------
// Setup
// ---------------------------------------------------------------------------

type env struct {
	uc       *reschedule_booking.UseCase
	bookings *fakeBookingRepo
	slots    *fakeSlotRepo
	emitter  *fakeEmitter
}

func newEnv(t *testing.T, b *domain.Booking, day []*domain.Slot) *env {
	t.Helper()
	e := &env{
		bookings: &fakeBookingRepo{booking: b},
		slots:    &fakeSlotRepo{day: day},
		emitter:  &fakeEmitter{},
	}
	e.uc = reschedule_booking.NewUseCase(
		e.bookings,
		e.slots,
		fakeCustomerReader{},
		e.emitter,
		fakeTx{},
		nopLogger{},
	)
	return e
}

func admin() domain.Actor {
	return domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
}

func booking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          "bk-1",
		BookingCode: "GN-20260901001",
		CustomerID:  "cust-1",
		NailTechID:  "tech-1",
		SlotIDs:     []string{"old-1", "old-2"},
		Status:      status,
	}
}

func tomorrowSlots(ids ...string) []*domain.Slot {
	day := time.Now().In(domain.ManilaLocation()).AddDate(0, 0, 1)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	out := make([]*domain.Slot, 0, len(ids))
	for i, id := range ids {
		out = append(out, &domain.Slot{
			ID:         id,
			Date:       day,
			StartTime:  types.TimeString(fmt.Sprintf("%02d:00", 10+i)),
			Status:     domain.SlotAvailable,
			NailTechID: "tech-1",
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestExecute_PendingStaysPending(t *testing.T) {
	e := newEnv(t, booking(domain.StatusPending), tomorrowSlots("new-1", "new-2"))

	got, err := e.uc.Execute(context.Background(), admin(), &reschedule_booking.Request{
		BookingID:  "bk-1",
		NewSlotIDs: []string{"new-1", "new-2"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, []string{"new-1", "new-2"}, got.SlotIDs)
	assert.Equal(t, domain.SlotPending, e.slots.claimedAs)
	require.Len(t, e.slots.released, 1)
	assert.Equal(t, []string{"old-1", "old-2"}, e.slots.released[0])
	require.Len(t, e.emitter.events, 1)
	assert.Equal(t, events.TypeBookingRescheduled, e.emitter.events[0].Type)
}

func TestExecute_ConfirmedStaysConfirmed(t *testing.T) {
	e := newEnv(t, booking(domain.StatusConfirmed), tomorrowSlots("new-1"))

	got, err := e.uc.Execute(context.Background(), admin(), &reschedule_booking.Request{
		BookingID:  "bk-1",
		NewSlotIDs: []string{"new-1"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Equal(t, domain.SlotConfirmed, e.slots.claimedAs)
}

func TestExecute_ClaimConflictLeavesOldSlots(t *testing.T) {
	e := newEnv(t, booking(domain.StatusPending), tomorrowSlots("new-1"))
	e.slots.conflictErr = slotRepo.ErrSlotConflict

	_, err := e.uc.Execute(context.Background(), admin(), &reschedule_booking.Request{
		BookingID:  "bk-1",
		NewSlotIDs: []string{"new-1"},
	})
	assert.ErrorIs(t, err, reschedule_booking.ErrSlotNotAvailable)

	// The swap is all-or-nothing: a failed claim must not free the old run.
	assert.False(t, e.slots.releaseCalled)
	assert.Nil(t, e.bookings.updated)
}

func TestExecute_TerminalBooking(t *testing.T) {
	e := newEnv(t, booking(domain.StatusCompleted), tomorrowSlots("new-1"))

	_, err := e.uc.Execute(context.Background(), admin(), &reschedule_booking.Request{
		BookingID:  "bk-1",
		NewSlotIDs: []string{"new-1"},
	})
	assert.ErrorIs(t, err, reschedule_booking.ErrCannotReschedule)
}

func TestExecute_ForeignTechSlot(t *testing.T) {
	day := tomorrowSlots("new-1")
	day[0].NailTechID = "tech-2"
	e := newEnv(t, booking(domain.StatusPending), day)

	_, err := e.uc.Execute(context.Background(), admin(), &reschedule_booking.Request{
		BookingID:  "bk-1",
		NewSlotIDs: []string{"new-1"},
	})
	assert.ErrorIs(t, err, reschedule_booking.ErrSlotMismatch)
}

func TestExecute_StaffScope(t *testing.T) {
	otherTech := "tech-2"
	staff := domain.Actor{UserID: "staff-1", Role: domain.RoleStaff, AssignedNailTechID: &otherTech}
	e := newEnv(t, booking(domain.StatusPending), tomorrowSlots("new-1"))

	_, err := e.uc.Execute(context.Background(), staff, &reschedule_booking.Request{
		BookingID:  "bk-1",
		NewSlotIDs: []string{"new-1"},
	})
	assert.ErrorIs(t, err, reschedule_booking.ErrAccessDenied)
}

func TestExecute_ReasonRecorded(t *testing.T) {
	e := newEnv(t, booking(domain.StatusPending), tomorrowSlots("new-1"))

	reason := "client moved the appointment"
	got, err := e.uc.Execute(context.Background(), admin(), &reschedule_booking.Request{
		BookingID:  "bk-1",
		NewSlotIDs: []string{"new-1"},
		Reason:     &reason,
	})
	require.NoError(t, err)
	require.NotNil(t, got.StatusReason)
	assert.Equal(t, reason, *got.StatusReason)
}

func TestExecute_NotFound(t *testing.T) {
	e := newEnv(t, booking(domain.StatusPending), tomorrowSlots("new-1"))

	_, err := e.uc.Execute(context.Background(), admin(), &reschedule_booking.Request{
		BookingID:  "bk-404",
		NewSlotIDs: []string{"new-1"},
	})
	assert.ErrorIs(t, err, reschedule_booking.ErrBookingNotFound)
}
