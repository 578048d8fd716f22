package slots_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	nailtechRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/nailtech"
	slotRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/slot"
	"github.com/gleamnails/GN-BookingService/internal/service/slots"
	"github.com/gleamnails/GN-BookingService/pkg/types"
)

type fakeSlotRepo struct {
	byID       map[string]*domain.Slot
	created    []*domain.Slot
	updated    []*domain.Slot
	createErr  error
	listResult []*domain.Slot
	lastFilter domain.SlotRangeFilter
}

func newFakeSlotRepo(ss ...*domain.Slot) *fakeSlotRepo {
	r := &fakeSlotRepo{byID: map[string]*domain.Slot{}}
	for _, s := range ss {
		r.byID[s.ID] = s
	}
	return r
}

func (r *fakeSlotRepo) CreateBatch(_ context.Context, slots []*domain.Slot) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, slots...)
	return nil
}

func (r *fakeSlotRepo) GetByID(_ context.Context, id string) (*domain.Slot, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSlotRepo) ListByRange(_ context.Context, filter domain.SlotRangeFilter) ([]*domain.Slot, error) {
	r.lastFilter = filter
	return r.listResult, nil
}

func (r *fakeSlotRepo) Update(_ context.Context, s *domain.Slot) error {
	copied := *s
	r.byID[s.ID] = &copied
	r.updated = append(r.updated, &copied)
	return nil
}

type fakeTechRepo struct {
	tech *domain.NailTech
}

func (r *fakeTechRepo) GetByID(_ context.Context, id string) (*domain.NailTech, error) {
	if r.tech == nil || r.tech.ID != id {
		return nil, nailtechRepo.ErrNailTechNotFound
	}
	return r.tech, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(slotR *fakeSlotRepo, tech *domain.NailTech) *slots.Service {
	return slots.NewService(slotR, &fakeTechRepo{tech: tech}, nopLogger{})
}

func activeTech() *domain.NailTech {
	return &domain.NailTech{ID: "tech-1", Name: "Mika", IsActive: true}
}

func admin() domain.Actor {
	return domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
}

func TestCreateBatch(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := newService(repo, activeTech())

	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	created, err := svc.CreateBatch(context.Background(), "tech-1", []slots.NewSlotInput{
		{Date: date, StartTime: types.TimeString("10:00")},
		{Date: date, StartTime: types.TimeString("13:00"), SlotType: domain.SlotWithSqueezeFee},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.NotEmpty(t, created[0].ID)
	assert.Equal(t, domain.SlotAvailable, created[0].Status)
	assert.Equal(t, domain.SlotRegular, created[0].SlotType, "empty type defaults to regular")
	assert.Equal(t, domain.SlotWithSqueezeFee, created[1].SlotType)
	assert.Len(t, repo.created, 2)
}

func TestCreateBatch_Rejections(t *testing.T) {
	t.Run("empty batch", func(t *testing.T) {
		svc := newService(newFakeSlotRepo(), activeTech())
		_, err := svc.CreateBatch(context.Background(), "tech-1", nil)
		assert.ErrorIs(t, err, slots.ErrInvalidInput)
	})

	t.Run("unknown tech", func(t *testing.T) {
		svc := newService(newFakeSlotRepo(), nil)
		_, err := svc.CreateBatch(context.Background(), "tech-1", []slots.NewSlotInput{
			{Date: time.Now(), StartTime: types.TimeString("10:00")},
		})
		assert.ErrorIs(t, err, slots.ErrNailTechNotFound)
	})

	t.Run("inactive tech", func(t *testing.T) {
		tech := activeTech()
		tech.IsActive = false
		svc := newService(newFakeSlotRepo(), tech)
		_, err := svc.CreateBatch(context.Background(), "tech-1", []slots.NewSlotInput{
			{Date: time.Now(), StartTime: types.TimeString("10:00")},
		})
		assert.ErrorIs(t, err, slots.ErrInvalidInput)
	})

	t.Run("bad start time", func(t *testing.T) {
		svc := newService(newFakeSlotRepo(), activeTech())
		_, err := svc.CreateBatch(context.Background(), "tech-1", []slots.NewSlotInput{
			{Date: time.Now(), StartTime: types.TimeString("25:99")},
		})
		assert.ErrorIs(t, err, slots.ErrInvalidInput)
	})

	t.Run("duplicate time", func(t *testing.T) {
		repo := newFakeSlotRepo()
		repo.createErr = slotRepo.ErrDuplicateSlot
		svc := newService(repo, activeTech())
		_, err := svc.CreateBatch(context.Background(), "tech-1", []slots.NewSlotInput{
			{Date: time.Now(), StartTime: types.TimeString("10:00")},
		})
		assert.ErrorIs(t, err, slots.ErrDuplicateSlot)
	})
}

func TestUpdate_BlockAndHide(t *testing.T) {
	repo := newFakeSlotRepo(&domain.Slot{ID: "slot-1", NailTechID: "tech-1", Status: domain.SlotAvailable})
	svc := newService(repo, activeTech())

	blocked := domain.SlotBlocked
	hidden := true
	got, err := svc.Update(context.Background(), admin(), "slot-1", slots.UpdateInput{
		Status:   &blocked,
		IsHidden: &hidden,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SlotBlocked, got.Status)
	assert.True(t, got.IsHidden)
}

func TestUpdate_OccupiedSlot(t *testing.T) {
	repo := newFakeSlotRepo(&domain.Slot{ID: "slot-1", NailTechID: "tech-1", Status: domain.SlotConfirmed})
	svc := newService(repo, activeTech())

	available := domain.SlotAvailable
	_, err := svc.Update(context.Background(), admin(), "slot-1", slots.UpdateInput{Status: &available})
	assert.ErrorIs(t, err, slots.ErrSlotOccupied)
}

func TestUpdate_BookingStatesRejected(t *testing.T) {
	repo := newFakeSlotRepo(&domain.Slot{ID: "slot-1", NailTechID: "tech-1", Status: domain.SlotAvailable})
	svc := newService(repo, activeTech())

	pending := domain.SlotPending
	_, err := svc.Update(context.Background(), admin(), "slot-1", slots.UpdateInput{Status: &pending})
	assert.ErrorIs(t, err, slots.ErrInvalidInput)
}

func TestUpdate_StaffScope(t *testing.T) {
	repo := newFakeSlotRepo(&domain.Slot{ID: "slot-1", NailTechID: "tech-1", Status: domain.SlotAvailable})
	svc := newService(repo, activeTech())

	otherTech := "tech-2"
	staff := domain.Actor{UserID: "staff-1", Role: domain.RoleStaff, AssignedNailTechID: &otherTech}
	hidden := true
	_, err := svc.Update(context.Background(), staff, "slot-1", slots.UpdateInput{IsHidden: &hidden})
	assert.ErrorIs(t, err, slots.ErrAccessDenied)
}

func TestListAvailability(t *testing.T) {
	repo := newFakeSlotRepo()
	repo.listResult = []*domain.Slot{{ID: "slot-1"}}
	svc := newService(repo, activeTech())

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 14)
	got, err := svc.ListAvailability(context.Background(), "tech-1", from, to)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// The public view filters to visible available slots.
	assert.False(t, repo.lastFilter.IncludeHidden)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.SlotAvailable, *repo.lastFilter.Status)
}

func TestListAvailability_InactiveTechHasNone(t *testing.T) {
	tech := activeTech()
	tech.IsActive = false
	repo := newFakeSlotRepo()
	repo.listResult = []*domain.Slot{{ID: "slot-1"}}
	svc := newService(repo, tech)

	got, err := svc.ListAvailability(context.Background(), "tech-1", time.Now(), time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListSchedule_IncludesHidden(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := newService(repo, activeTech())

	_, err := svc.ListSchedule(context.Background(), admin(), "tech-1", time.Now(), time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.True(t, repo.lastFilter.IncludeHidden)
	assert.Nil(t, repo.lastFilter.Status)
}
