package create_booking_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/internal/events"
	nailtechRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/nailtech"
	slotRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/slot"
	"github.com/gleamnails/GN-BookingService/internal/service/customers"
	"github.com/gleamnails/GN-BookingService/internal/usecase/create_booking"
	"github.com/gleamnails/GN-BookingService/pkg/types"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeBookingRepo struct {
	created []*domain.Booking
	seq     int
}

func (r *fakeBookingRepo) NextBookingCode(_ context.Context, day time.Time) (string, error) {
	r.seq++
	return fmt.Sprintf("%s-%s%03d", domain.BookingCodePrefix, day.Format(domain.BookingCodeDateFormat), r.seq), nil
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	copied := *b
	copied.CreatedAt = time.Now()
	r.created = append(r.created, &copied)
	return &copied, nil
}

type fakeSlotRepo struct {
	byID        map[string]*domain.Slot
	day         []*domain.Slot
	claimed     []string
	conflictErr error
}

func (r *fakeSlotRepo) GetByIDs(_ context.Context, ids []string) ([]*domain.Slot, error) {
	var out []*domain.Slot
	// Rows come back ordered by start time, the way the storage layer sorts.
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

func (r *fakeSlotRepo) TransitionStatus(_ context.Context, ids []string, _ string, _, _ domain.SlotStatus) error {
	if r.conflictErr != nil {
		return r.conflictErr
	}
	r.claimed = append(r.claimed, ids...)
	return nil
}

type fakeNailTechRepo struct {
	tech *domain.NailTech
}

func (r *fakeNailTechRepo) GetByID(_ context.Context, id string) (*domain.NailTech, error) {
	if r.tech == nil || r.tech.ID != id {
		return nil, nailtechRepo.ErrNailTechNotFound
	}
	return r.tech, nil
}

type fakeCustomers struct {
	customer   *domain.Customer
	recomputed []string
}

func (f *fakeCustomers) FindOrCreate(_ context.Context, in customers.NewCustomerInput) (*domain.Customer, error) {
	if f.customer == nil {
		f.customer = &domain.Customer{
			ID:    "cust-1",
			Name:  in.Name,
			Phone: in.Phone,
			Stats: domain.CustomerStats{ClientType: domain.ClientNew},
		}
	}
	return f.customer, nil
}

func (f *fakeCustomers) RecomputeLedger(_ context.Context, customerID string) error {
	f.recomputed = append(f.recomputed, customerID)
	return nil
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
	uc        *create_booking.UseCase
	bookings  *fakeBookingRepo
	slots     *fakeSlotRepo
	techs     *fakeNailTechRepo
	customers *fakeCustomers
	emitter   *fakeEmitter
}

func newEnv(t *testing.T, tech *domain.NailTech, day []*domain.Slot) *env {
	t.Helper()
	e := &env{
		bookings:  &fakeBookingRepo{},
		slots:     &fakeSlotRepo{day: day, byID: map[string]*domain.Slot{}},
		techs:     &fakeNailTechRepo{tech: tech},
		customers: &fakeCustomers{},
		emitter:   &fakeEmitter{},
	}
	for _, s := range day {
		e.slots.byID[s.ID] = s
	}
	e.uc = create_booking.NewUseCase(
		e.bookings,
		e.slots,
		e.techs,
		e.customers,
		e.customers,
		e.emitter,
		fakeTx{},
		domain.DefaultDepositRequired,
		nopLogger{},
	)
	return e
}

func activeTech() *domain.NailTech {
	return &domain.NailTech{
		ID:                  "tech-1",
		Name:                "Mika",
		ServiceAvailability: domain.AvailabilityStudioAndHome,
		IsActive:            true,
	}
}

// tomorrowSlots builds an ordered day of available slots starting tomorrow.
func tomorrowSlots(states ...domain.SlotStatus) []*domain.Slot {
	day := time.Now().In(domain.ManilaLocation()).AddDate(0, 0, 1)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	out := make([]*domain.Slot, 0, len(states))
	for i, status := range states {
		out = append(out, &domain.Slot{
			ID:         fmt.Sprintf("slot-%d", i+1),
			Date:       day,
			StartTime:  types.TimeString(fmt.Sprintf("%02d:00", 10+i)),
			Status:     status,
			SlotType:   domain.SlotRegular,
			NailTechID: "tech-1",
		})
	}
	return out
}

func validRequest(slotIDs ...string) *create_booking.Request {
	return &create_booking.Request{
		NailTechID:      "tech-1",
		SlotIDs:         slotIDs,
		ServiceType:     "gel_manicure",
		ServiceLocation: domain.LocationStudio,
		CustomerName:    "Ana Reyes",
		CustomerPhone:   "+63 917 000 0001",
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestExecute_CreatesPendingBooking(t *testing.T) {
	e := newEnv(t, activeTech(), tomorrowSlots(domain.SlotAvailable, domain.SlotAvailable))

	resp, err := e.uc.Execute(context.Background(), validRequest("slot-1", "slot-2"))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, domain.PaymentUnpaid, resp.PaymentStatus)
	assert.Equal(t, []string{"slot-1", "slot-2"}, resp.SlotIDs)
	assert.Equal(t, domain.ClientNew, resp.ClientType)
	assert.True(t, resp.DepositRequired.Equal(domain.DefaultDepositRequired))
	assert.Contains(t, resp.BookingCode, domain.BookingCodePrefix+"-")

	assert.ElementsMatch(t, []string{"slot-1", "slot-2"}, e.slots.claimed)
	assert.Equal(t, []string{"cust-1"}, e.customers.recomputed)
	require.Len(t, e.emitter.events, 1)
	assert.Equal(t, events.TypeBookingCreated, e.emitter.events[0].Type)
}

func TestExecute_SlotAlreadyTaken(t *testing.T) {
	e := newEnv(t, activeTech(), tomorrowSlots(domain.SlotPending))

	_, err := e.uc.Execute(context.Background(), validRequest("slot-1"))
	assert.ErrorIs(t, err, create_booking.ErrSlotNotAvailable)
	assert.Empty(t, e.bookings.created)
}

func TestExecute_HiddenSlotNotBookable(t *testing.T) {
	day := tomorrowSlots(domain.SlotAvailable)
	day[0].IsHidden = true
	e := newEnv(t, activeTech(), day)

	_, err := e.uc.Execute(context.Background(), validRequest("slot-1"))
	assert.ErrorIs(t, err, create_booking.ErrSlotNotAvailable)
}

func TestExecute_ClaimLosesRace(t *testing.T) {
	e := newEnv(t, activeTech(), tomorrowSlots(domain.SlotAvailable))
	e.slots.conflictErr = slotRepo.ErrSlotConflict

	_, err := e.uc.Execute(context.Background(), validRequest("slot-1"))
	assert.ErrorIs(t, err, create_booking.ErrSlotNotAvailable)
	assert.Empty(t, e.bookings.created)
}

func TestExecute_NonContiguousRun(t *testing.T) {
	// slot-2 sits between the chosen slots, so slot-1 + slot-3 is not a run.
	e := newEnv(t, activeTech(), tomorrowSlots(domain.SlotAvailable, domain.SlotAvailable, domain.SlotAvailable))

	_, err := e.uc.Execute(context.Background(), validRequest("slot-1", "slot-3"))
	assert.ErrorIs(t, err, create_booking.ErrSlotsNotContiguous)
}

func TestExecute_BlockedSlotBreaksRun(t *testing.T) {
	// A blocked slot in the middle is a gap even though it is not bookable.
	e := newEnv(t, activeTech(), tomorrowSlots(domain.SlotAvailable, domain.SlotBlocked, domain.SlotAvailable))

	_, err := e.uc.Execute(context.Background(), validRequest("slot-1", "slot-3"))
	assert.ErrorIs(t, err, create_booking.ErrSlotsNotContiguous)
}

func TestExecute_SlotInPast(t *testing.T) {
	day := tomorrowSlots(domain.SlotAvailable)
	day[0].Date = day[0].Date.AddDate(0, 0, -3)
	e := newEnv(t, activeTech(), day)

	_, err := e.uc.Execute(context.Background(), validRequest("slot-1"))
	assert.ErrorIs(t, err, create_booking.ErrSlotInPast)
}

func TestExecute_UnknownSlot(t *testing.T) {
	e := newEnv(t, activeTech(), tomorrowSlots(domain.SlotAvailable))

	_, err := e.uc.Execute(context.Background(), validRequest("slot-1", "slot-404"))
	assert.ErrorIs(t, err, create_booking.ErrSlotNotFound)
}

func TestExecute_TechChecks(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		e := newEnv(t, nil, tomorrowSlots(domain.SlotAvailable))
		_, err := e.uc.Execute(context.Background(), validRequest("slot-1"))
		assert.ErrorIs(t, err, create_booking.ErrNailTechNotFound)
	})

	t.Run("inactive", func(t *testing.T) {
		tech := activeTech()
		tech.IsActive = false
		e := newEnv(t, tech, tomorrowSlots(domain.SlotAvailable))
		_, err := e.uc.Execute(context.Background(), validRequest("slot-1"))
		assert.ErrorIs(t, err, create_booking.ErrNailTechInactive)
	})

	t.Run("location not served", func(t *testing.T) {
		tech := activeTech()
		tech.ServiceAvailability = domain.AvailabilityStudioOnly
		e := newEnv(t, tech, tomorrowSlots(domain.SlotAvailable))

		req := validRequest("slot-1")
		req.ServiceLocation = domain.LocationHome
		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, create_booking.ErrLocationNotServed)
	})
}

func TestExecute_Validation(t *testing.T) {
	e := newEnv(t, activeTech(), tomorrowSlots(domain.SlotAvailable, domain.SlotAvailable))

	t.Run("no slots", func(t *testing.T) {
		_, err := e.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, create_booking.ErrInvalidInput)
	})

	t.Run("duplicate slot ids", func(t *testing.T) {
		_, err := e.uc.Execute(context.Background(), validRequest("slot-1", "slot-1"))
		assert.ErrorIs(t, err, create_booking.ErrInvalidInput)
	})

	t.Run("too many slots", func(t *testing.T) {
		ids := make([]string, domain.MaxSlotsPerBooking+1)
		for i := range ids {
			ids[i] = fmt.Sprintf("slot-%d", i+1)
		}
		_, err := e.uc.Execute(context.Background(), validRequest(ids...))
		assert.ErrorIs(t, err, create_booking.ErrInvalidInput)
	})

	t.Run("missing phone", func(t *testing.T) {
		req := validRequest("slot-1")
		req.CustomerPhone = " "
		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, create_booking.ErrInvalidInput)
	})

	t.Run("bad location", func(t *testing.T) {
		req := validRequest("slot-1")
		req.ServiceLocation = domain.ServiceLocation("moon")
		_, err := e.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, create_booking.ErrInvalidInput)
	})
}

func TestExecute_BookingCodesIncrementPerDay(t *testing.T) {
	e := newEnv(t, activeTech(), tomorrowSlots(domain.SlotAvailable, domain.SlotAvailable))

	first, err := e.uc.Execute(context.Background(), validRequest("slot-1"))
	require.NoError(t, err)
	second, err := e.uc.Execute(context.Background(), validRequest("slot-2"))
	require.NoError(t, err)

	assert.NotEqual(t, first.BookingCode, second.BookingCode)
}
