// Package reschedule_booking swaps a booking onto new slots in one
// serializable transaction. Claiming the new run and releasing the old one
// are all-or-nothing: a failed claim leaves the original slots untouched.
package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/internal/events"
	bookingRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/booking"
	slotRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/slot"
)

// Request is a slot swap for an existing booking.
type Request struct {
	BookingID  string
	NewSlotIDs []string
	Reason     *string
}

// UseCase moves bookings onto new slots.
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	customers    CustomerReader
	emitter      EventEmitter
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the reschedule usecase.
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	customers CustomerReader,
	emitter EventEmitter,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		customers:    customers,
		emitter:      emitter,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs the slot swap. The booking keeps its status: a confirmed
// booking stays confirmed on the new slots, a pending one stays pending.
func (uc *UseCase) Execute(ctx context.Context, actor domain.Actor, req *Request) (*domain.Booking, error) {
	uc.logger.Info("RescheduleBooking: booking=%s newSlots=%d", req.BookingID, len(req.NewSlotIDs))

	// 1. Validate the request shape.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(domain.ManilaLocation())

	var result *domain.Booking

	// 2. Swap atomically.
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Lock the booking row.
		b, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to load booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to load booking: %v", ErrInternal, err)
		}
		if !actor.CanAccessNailTech(b.NailTechID) {
			uc.logger.Warn("RescheduleBooking: access denied for user=%s to booking id=%s", actor.UserID, req.BookingID)
			return ErrAccessDenied
		}
		if !b.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%s in status=%s cannot be rescheduled", req.BookingID, b.Status)
			return ErrCannotReschedule
		}

		// 2.2. Lock and validate the new slot rows.
		slots, err := uc.slotRepo.GetByIDs(txCtx, req.NewSlotIDs)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to load slots: %v", err)
			return fmt.Errorf("%w: failed to load slots: %v", ErrInternal, err)
		}
		if err := validateSlots(slots, b, req.NewSlotIDs, now); err != nil {
			uc.logger.Warn("RescheduleBooking: slot validation failed: %v", err)
			return err
		}

		daySlots, err := uc.slotRepo.ListByRange(txCtx, domain.SlotRangeFilter{
			NailTechID:    b.NailTechID,
			From:          slots[0].Date,
			To:            slots[0].Date,
			IncludeHidden: true,
		})
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to list day slots: %v", err)
			return fmt.Errorf("%w: failed to list day slots: %v", ErrInternal, err)
		}
		if err := validateContiguous(slots, daySlots); err != nil {
			uc.logger.Warn("RescheduleBooking: contiguity check failed for slots=%v", req.NewSlotIDs)
			return err
		}

		// 2.3. Claim the new run in the state matching the booking.
		target := domain.SlotPending
		if b.Status == domain.StatusConfirmed {
			target = domain.SlotConfirmed
		}
		if err := uc.slotRepo.TransitionStatus(txCtx, req.NewSlotIDs, b.NailTechID, domain.SlotAvailable, target); err != nil {
			if errors.Is(err, slotRepo.ErrSlotConflict) {
				uc.logger.Warn("RescheduleBooking: slot claim lost race for slots=%v", req.NewSlotIDs)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("RescheduleBooking: failed to claim new slots: %v", err)
			return fmt.Errorf("%w: failed to claim new slots: %v", ErrInternal, err)
		}

		// 2.4. Release the old run.
		if err := uc.slotRepo.Release(txCtx, b.SlotIDs); err != nil {
			uc.logger.Error("RescheduleBooking: failed to release old slots: %v", err)
			return fmt.Errorf("%w: failed to release old slots: %v", ErrInternal, err)
		}

		// 2.5. Point the booking at the new run.
		orderedIDs := make([]string, 0, len(slots))
		for _, s := range slots {
			orderedIDs = append(orderedIDs, s.ID)
		}
		b.SlotIDs = orderedIDs
		if req.Reason != nil {
			b.StatusReason = req.Reason
		}
		if err := uc.bookingRepo.Update(txCtx, b); err != nil {
			uc.logger.Error("RescheduleBooking: failed to update booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%s code=%s moved to slots=%v",
		result.ID, result.BookingCode, result.SlotIDs)

	// 3. Post-commit event. The ledger is untouched: totals did not move.
	customer, err := uc.customers.GetByID(ctx, result.CustomerID)
	if err != nil {
		uc.logger.Warn("RescheduleBooking: failed to load customer=%s for event: %v", result.CustomerID, err)
	}
	uc.emitter.Emit(events.Event{
		Type:       events.TypeBookingRescheduled,
		Booking:    result,
		Customer:   customer,
		OccurredAt: uc.timeProvider.Now(),
	})

	return result, nil
}

func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BookingID) == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}
	if len(req.NewSlotIDs) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}
	if len(req.NewSlotIDs) > domain.MaxSlotsPerBooking {
		return fmt.Errorf("%w: at most %d slots per booking", ErrInvalidInput, domain.MaxSlotsPerBooking)
	}
	seen := make(map[string]struct{}, len(req.NewSlotIDs))
	for _, id := range req.NewSlotIDs {
		if id == "" {
			return fmt.Errorf("%w: empty slot id", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate slot id %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxStatusReasonLength {
		return fmt.Errorf("%w: reason too long", ErrInvalidInput)
	}
	return nil
}

func validateSlots(slots []*domain.Slot, b *domain.Booking, requested []string, now time.Time) error {
	if len(slots) != len(requested) {
		return ErrSlotNotFound
	}

	day := slots[0].Date
	for _, s := range slots {
		if s.NailTechID != b.NailTechID {
			return ErrSlotMismatch
		}
		if !s.Date.Equal(day) {
			return ErrSlotsNotSameDay
		}
		if !s.IsBookable() {
			return ErrSlotNotAvailable
		}
	}

	start, err := slots[0].StartsAt()
	if err != nil {
		return fmt.Errorf("%w: failed to resolve slot start: %v", ErrInternal, err)
	}
	if !start.After(now) {
		return ErrSlotInPast
	}
	return nil
}

func validateContiguous(chosen []*domain.Slot, daySlots []*domain.Slot) error {
	if len(chosen) <= 1 {
		return nil
	}

	chosenIDs := make(map[string]struct{}, len(chosen))
	for _, s := range chosen {
		chosenIDs[s.ID] = struct{}{}
	}

	firstIdx := -1
	for i, s := range daySlots {
		if _, ok := chosenIDs[s.ID]; ok {
			firstIdx = i
			break
		}
	}
	if firstIdx < 0 || firstIdx+len(chosen) > len(daySlots) {
		return ErrSlotsNotContiguous
	}
	for i := 0; i < len(chosen); i++ {
		if _, ok := chosenIDs[daySlots[firstIdx+i].ID]; !ok {
			return ErrSlotsNotContiguous
		}
	}
	return nil
}
