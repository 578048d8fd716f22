package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	nailtechRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/nailtech"
	slotRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/slot"
	"github.com/gleamnails/GN-BookingService/pkg/types"
)

// Service manages the technicians' slot calendars: seeding, blocking,
// hiding and the public availability view.
type Service struct {
	slotRepo     SlotRepository
	nailTechRepo NailTechRepository
	logger       Logger
}

// NewService creates a slot service.
func NewService(slotRepo SlotRepository, nailTechRepo NailTechRepository, logger Logger) *Service {
	return &Service{
		slotRepo:     slotRepo,
		nailTechRepo: nailTechRepo,
		logger:       logger,
	}
}

// NewSlotInput is one slot to seed.
type NewSlotInput struct {
	Date      time.Time
	StartTime types.TimeString
	SlotType  domain.SlotType
}

// CreateBatch seeds slots for one technician. The whole batch succeeds or
// fails together; a time collision with an existing slot rejects the batch.
func (s *Service) CreateBatch(ctx context.Context, nailTechID string, inputs []NewSlotInput) ([]*domain.Slot, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no slots given", ErrInvalidInput)
	}

	tech, err := s.getNailTech(ctx, nailTechID)
	if err != nil {
		return nil, err
	}
	if !tech.IsActive {
		s.logger.Warn("CreateBatch: nail tech id=%s is inactive", nailTechID)
		return nil, fmt.Errorf("%w: nail tech is inactive", ErrInvalidInput)
	}

	slots := make([]*domain.Slot, 0, len(inputs))
	for _, in := range inputs {
		if err := in.StartTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, string(in.StartTime))
		}
		slotType := in.SlotType
		if slotType == "" {
			slotType = domain.SlotRegular
		}
		if slotType != domain.SlotRegular && slotType != domain.SlotWithSqueezeFee {
			return nil, fmt.Errorf("%w: invalid slot type %q", ErrInvalidInput, slotType)
		}
		slots = append(slots, &domain.Slot{
			ID:         uuid.NewString(),
			Date:       in.Date.Truncate(24 * time.Hour),
			StartTime:  in.StartTime,
			Status:     domain.SlotAvailable,
			SlotType:   slotType,
			NailTechID: nailTechID,
		})
	}

	if err := s.slotRepo.CreateBatch(ctx, slots); err != nil {
		if errors.Is(err, slotRepo.ErrDuplicateSlot) {
			s.logger.Warn("CreateBatch: duplicate slot time for nail tech id=%s", nailTechID)
			return nil, ErrDuplicateSlot
		}
		s.logger.Error("CreateBatch: repository error for nail tech id=%s: %v", nailTechID, err)
		return nil, fmt.Errorf("%w: CreateBatch - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBatch: created %d slots for nail tech id=%s", len(slots), nailTechID)
	return slots, nil
}

// UpdateInput carries slot management edits. Nil means "leave unchanged".
// Status edits only move between available and blocked; slots held by a
// booking are managed through the booking lifecycle.
type UpdateInput struct {
	Status   *domain.SlotStatus
	IsHidden *bool
	Notes    *string
}

// Update edits one slot.
func (s *Service) Update(ctx context.Context, actor domain.Actor, slotID string, in UpdateInput) (*domain.Slot, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("Update: slot id=%s not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("Update: repository error for slot id=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}
	if !actor.CanAccessNailTech(slot.NailTechID) {
		s.logger.Warn("Update: access denied for user=%s to slot id=%s", actor.UserID, slotID)
		return nil, ErrAccessDenied
	}

	if in.Status != nil {
		if *in.Status != domain.SlotAvailable && *in.Status != domain.SlotBlocked {
			return nil, fmt.Errorf("%w: status can only be set to available or blocked", ErrInvalidInput)
		}
		if slot.Status == domain.SlotPending || slot.Status == domain.SlotConfirmed {
			s.logger.Warn("Update: slot id=%s is %s, held by a booking", slotID, slot.Status)
			return nil, ErrSlotOccupied
		}
		slot.Status = *in.Status
	}
	if in.IsHidden != nil {
		slot.IsHidden = *in.IsHidden
	}
	if in.Notes != nil {
		slot.Notes = in.Notes
	}

	if err := s.slotRepo.Update(ctx, slot); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("Update: failed to update slot id=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: Update - update slot: %v", ErrInternal, err)
	}

	s.logger.Info("Update: slot id=%s updated status=%s hidden=%t", slot.ID, slot.Status, slot.IsHidden)
	return slot, nil
}

// ListAvailability returns the public booking-form view: available,
// non-hidden slots for one technician within the date range.
func (s *Service) ListAvailability(ctx context.Context, nailTechID string, from, to time.Time) ([]*domain.Slot, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: date range end before start", ErrInvalidInput)
	}

	tech, err := s.getNailTech(ctx, nailTechID)
	if err != nil {
		return nil, err
	}
	if !tech.IsActive {
		// An inactive technician simply has no availability.
		return []*domain.Slot{}, nil
	}

	status := domain.SlotAvailable
	list, err := s.slotRepo.ListByRange(ctx, domain.SlotRangeFilter{
		NailTechID:    nailTechID,
		From:          from,
		To:            to,
		IncludeHidden: false,
		Status:        &status,
	})
	if err != nil {
		s.logger.Error("ListAvailability: repository error for nail tech id=%s: %v", nailTechID, err)
		return nil, fmt.Errorf("%w: ListAvailability - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// ListSchedule returns the staff calendar view: every slot in the range,
// hidden ones included.
func (s *Service) ListSchedule(ctx context.Context, actor domain.Actor, nailTechID string, from, to time.Time) ([]*domain.Slot, error) {
	if !actor.CanAccessNailTech(nailTechID) {
		s.logger.Warn("ListSchedule: access denied for user=%s to nail tech id=%s", actor.UserID, nailTechID)
		return nil, ErrAccessDenied
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: date range end before start", ErrInvalidInput)
	}

	list, err := s.slotRepo.ListByRange(ctx, domain.SlotRangeFilter{
		NailTechID:    nailTechID,
		From:          from,
		To:            to,
		IncludeHidden: true,
	})
	if err != nil {
		s.logger.Error("ListSchedule: repository error for nail tech id=%s: %v", nailTechID, err)
		return nil, fmt.Errorf("%w: ListSchedule - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

func (s *Service) getNailTech(ctx context.Context, id string) (*domain.NailTech, error) {
	tech, err := s.nailTechRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, nailtechRepo.ErrNailTechNotFound) {
			s.logger.Warn("getNailTech: nail tech id=%s not found", id)
			return nil, ErrNailTechNotFound
		}
		s.logger.Error("getNailTech: repository error for nail tech id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: getNailTech - repository error: %v", ErrInternal, err)
	}
	return tech, nil
}
