package customers_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	customerRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/customer"
	"github.com/gleamnails/GN-BookingService/internal/service/customers"
)

type fakeCustomerRepo struct {
	byID      map[string]*domain.Customer
	byPhone   map[string]*domain.Customer
	createErr error
	onCreate  func()
	stats     map[string]domain.CustomerStats
	deleted   []string
}

func newFakeCustomerRepo(cs ...*domain.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{
		byID:    map[string]*domain.Customer{},
		byPhone: map[string]*domain.Customer{},
		stats:   map[string]domain.CustomerStats{},
	}
	for _, c := range cs {
		r.byID[c.ID] = c
		r.byPhone[c.Phone] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	if r.onCreate != nil {
		r.onCreate()
	}
	if r.createErr != nil {
		return nil, r.createErr
	}
	copied := *c
	r.byID[c.ID] = &copied
	r.byPhone[c.Phone] = &copied
	return &copied, nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCustomerRepo) GetByPhone(_ context.Context, phone string) (*domain.Customer, error) {
	c, ok := r.byPhone[phone]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCustomerRepo) UpdateStats(_ context.Context, id string, stats domain.CustomerStats) error {
	if _, ok := r.byID[id]; !ok {
		return customerRepo.ErrCustomerNotFound
	}
	r.stats[id] = stats
	return nil
}

func (r *fakeCustomerRepo) SetActive(_ context.Context, id string, active bool) error {
	c, ok := r.byID[id]
	if !ok {
		return customerRepo.ErrCustomerNotFound
	}
	c.IsActive = active
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return customerRepo.ErrCustomerNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	active   int
}

func (r *fakeBookingRepo) ListByCustomer(_ context.Context, _ string) ([]*domain.Booking, error) {
	return r.bookings, nil
}

func (r *fakeBookingRepo) CountActiveByCustomer(_ context.Context, _ string) (int, error) {
	return r.active, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(cr *fakeCustomerRepo, br *fakeBookingRepo) *customers.Service {
	if br == nil {
		br = &fakeBookingRepo{}
	}
	return customers.NewService(cr, br, nopLogger{})
}

func TestFindOrCreate_New(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := newService(repo, nil)

	email := "anna@example.com"
	got, err := svc.FindOrCreate(context.Background(), customers.NewCustomerInput{
		Name:  "  Anna Reyes  ",
		Phone: " +639171234567 ",
		Email: &email,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Anna Reyes", got.Name)
	assert.Equal(t, "+639171234567", got.Phone)
	assert.True(t, got.IsActive)
	assert.Equal(t, domain.ClientNew, got.Stats.ClientType)
}

func TestFindOrCreate_MatchesByPhone(t *testing.T) {
	existing := &domain.Customer{ID: "cust-1", Name: "Anna", Phone: "+639171234567", IsActive: true}
	repo := newFakeCustomerRepo(existing)
	svc := newService(repo, nil)

	got, err := svc.FindOrCreate(context.Background(), customers.NewCustomerInput{
		Name:  "Different Name",
		Phone: "+639171234567",
	})
	require.NoError(t, err)

	// The phone is the identity key; the stored record wins.
	assert.Equal(t, "cust-1", got.ID)
	assert.Equal(t, "Anna", got.Name)
}

func TestFindOrCreate_ReactivatesDeactivated(t *testing.T) {
	existing := &domain.Customer{ID: "cust-1", Name: "Anna", Phone: "+639171234567", IsActive: false}
	repo := newFakeCustomerRepo(existing)
	svc := newService(repo, nil)

	got, err := svc.FindOrCreate(context.Background(), customers.NewCustomerInput{
		Name:  "Anna",
		Phone: "+639171234567",
	})
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.True(t, repo.byID["cust-1"].IsActive)
}

func TestFindOrCreate_ConcurrentCreateRace(t *testing.T) {
	repo := newFakeCustomerRepo()
	repo.createErr = customerRepo.ErrDuplicatePhone
	// The concurrent winner lands between the initial miss and our insert.
	winner := &domain.Customer{ID: "cust-9", Name: "Anna", Phone: "+639171234567", IsActive: true}
	repo.onCreate = func() {
		repo.byPhone[winner.Phone] = winner
	}
	svc := newService(repo, nil)

	got, err := svc.FindOrCreate(context.Background(), customers.NewCustomerInput{
		Name:  "Anna",
		Phone: "+639171234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "cust-9", got.ID)
}

func TestFindOrCreate_MissingFields(t *testing.T) {
	svc := newService(newFakeCustomerRepo(), nil)

	_, err := svc.FindOrCreate(context.Background(), customers.NewCustomerInput{Name: "Anna"})
	assert.ErrorIs(t, err, customers.ErrInvalidInput)

	_, err = svc.FindOrCreate(context.Background(), customers.NewCustomerInput{Phone: "+639171234567"})
	assert.ErrorIs(t, err, customers.ErrInvalidInput)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(newFakeCustomerRepo(), nil)

	_, err := svc.GetByID(context.Background(), "cust-404")
	assert.ErrorIs(t, err, customers.ErrCustomerNotFound)
}

func TestRecomputeLedger(t *testing.T) {
	completed := time.Date(2026, 8, 20, 14, 0, 0, 0, time.UTC)
	repo := newFakeCustomerRepo(&domain.Customer{ID: "cust-1", Phone: "+639171234567", IsActive: true})
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{
			ID:     "bk-1",
			Status: domain.StatusCompleted,
			Pricing: domain.Pricing{
				Total:      decimal.NewFromInt(1500),
				PaidAmount: decimal.NewFromInt(1500),
			},
			CompletedAt: &completed,
		},
		{ID: "bk-2", Status: domain.StatusCancelled},
	}}
	svc := newService(repo, bookings)

	err := svc.RecomputeLedger(context.Background(), "cust-1")
	require.NoError(t, err)

	stats, ok := repo.stats["cust-1"]
	require.True(t, ok)
	assert.Equal(t, 1, stats.TotalBookings, "cancelled bookings stay out of the ledger")
	assert.Equal(t, 1, stats.CompletedBookings)
	assert.True(t, stats.TotalSpent.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, domain.ClientRepeat, stats.ClientType)
	require.NotNil(t, stats.LastVisit)
	assert.True(t, stats.LastVisit.Equal(completed))
}

func TestRecomputeLedger_UnknownCustomer(t *testing.T) {
	svc := newService(newFakeCustomerRepo(), &fakeBookingRepo{})

	err := svc.RecomputeLedger(context.Background(), "cust-404")
	assert.ErrorIs(t, err, customers.ErrCustomerNotFound)
}

func TestDeactivate(t *testing.T) {
	repo := newFakeCustomerRepo(&domain.Customer{ID: "cust-1", Phone: "+639171234567", IsActive: true})
	svc := newService(repo, nil)

	require.NoError(t, svc.Deactivate(context.Background(), "cust-1"))
	assert.False(t, repo.byID["cust-1"].IsActive)
}

func TestDelete(t *testing.T) {
	repo := newFakeCustomerRepo(&domain.Customer{ID: "cust-1", Phone: "+639171234567", IsActive: true})
	svc := newService(repo, &fakeBookingRepo{active: 0})

	require.NoError(t, svc.Delete(context.Background(), "cust-1"))
	assert.Equal(t, []string{"cust-1"}, repo.deleted)
}

func TestDelete_BlockedByActiveBookings(t *testing.T) {
	repo := newFakeCustomerRepo(&domain.Customer{ID: "cust-1", Phone: "+639171234567", IsActive: true})
	svc := newService(repo, &fakeBookingRepo{active: 2})

	err := svc.Delete(context.Background(), "cust-1")
	assert.ErrorIs(t, err, customers.ErrHasActiveBookings)
	assert.Empty(t, repo.deleted)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newService(newFakeCustomerRepo(), &fakeBookingRepo{})

	err := svc.Delete(context.Background(), "cust-404")
	assert.ErrorIs(t, err, customers.ErrCustomerNotFound)
}
