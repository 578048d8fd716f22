package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/internal/events"
	bookingRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/booking"
	slotRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/slot"
)

// Service owns booking lifecycle transitions that touch a single booking:
// confirm, cancel, complete, no-show, payments, invoicing and notes. Slot
// claiming for new and rescheduled bookings lives in the usecase layer.
type Service struct {
	bookingRepo   BookingRepository
	slotRepo      SlotRepository
	quotationRepo QuotationRepository
	customers     CustomerReader
	ledger        LedgerRecomputer
	txManager     TransactionManager
	emitter       EventEmitter
	clock         TimeProvider
	logger        Logger
}

// NewService creates a booking service.
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	quotationRepo QuotationRepository,
	customers CustomerReader,
	ledger LedgerRecomputer,
	txManager TransactionManager,
	emitter EventEmitter,
	clock TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		slotRepo:      slotRepo,
		quotationRepo: quotationRepo,
		customers:     customers,
		ledger:        ledger,
		txManager:     txManager,
		emitter:       emitter,
		clock:         clock,
		logger:        logger,
	}
}

// GetByID fetches one booking for a staff actor. STAFF accounts only see
// bookings of their assigned technician.
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessNailTech(b.NailTechID) {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", actor.UserID, id)
		return nil, ErrAccessDenied
	}
	return b, nil
}

// GetByCode fetches one booking by its public code. The code itself is the
// capability: customers use it to look their booking up without an account.
func (s *Service) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByCode: booking code=%s not found", code)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetByCode - repository error: %v", ErrInternal, err)
	}
	return b, nil
}

// List returns bookings matching the filter. STAFF actors are pinned to
// their assigned technician regardless of the requested filter.
func (s *Service) List(ctx context.Context, actor domain.Actor, filter domain.BookingFilter) ([]*domain.Booking, error) {
	if actor.Role == domain.RoleStaff {
		if actor.AssignedNailTechID == nil {
			s.logger.Warn("List: staff user=%s has no assigned technician", actor.UserID)
			return nil, ErrAccessDenied
		}
		if filter.NailTechID != nil && *filter.NailTechID != *actor.AssignedNailTechID {
			s.logger.Warn("List: staff user=%s requested foreign technician=%s", actor.UserID, *filter.NailTechID)
			return nil, ErrAccessDenied
		}
		filter.NailTechID = actor.AssignedNailTechID
	}

	list, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// Confirm moves a pending booking to confirmed and hardens its slot claim.
// The deposit gate applies unless an admin explicitly waives it.
func (s *Service) Confirm(ctx context.Context, actor domain.Actor, bookingID string, skipDepositCheck bool) (*domain.Booking, error) {
	if skipDepositCheck && !actor.IsAdmin() {
		s.logger.Warn("Confirm: user=%s may not waive the deposit check", actor.UserID)
		return nil, ErrAccessDenied
	}

	var updated *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		b, err := s.getBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if !actor.CanAccessNailTech(b.NailTechID) {
			s.logger.Warn("Confirm: access denied for user=%s to booking id=%s", actor.UserID, bookingID)
			return ErrAccessDenied
		}
		if !b.CanBeConfirmed() {
			s.logger.Warn("Confirm: booking id=%s in status=%s cannot be confirmed", bookingID, b.Status)
			return ErrCannotConfirm
		}
		if !skipDepositCheck && !b.HasDeposit() {
			s.logger.Warn("Confirm: booking id=%s has no deposit on record", bookingID)
			return ErrPaymentRequired
		}

		if err := s.slotRepo.TransitionStatus(ctx, b.SlotIDs, b.NailTechID, domain.SlotPending, domain.SlotConfirmed); err != nil {
			if errors.Is(err, slotRepo.ErrSlotConflict) {
				s.logger.Warn("Confirm: slots for booking id=%s are no longer pending", bookingID)
				return ErrCannotConfirm
			}
			s.logger.Error("Confirm: failed to confirm slots for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Confirm - transition slots: %v", ErrInternal, err)
		}

		now := s.clock.Now()
		b.Status = domain.StatusConfirmed
		b.ConfirmedAt = &now
		if err := s.bookingRepo.Update(ctx, b); err != nil {
			s.logger.Error("Confirm: failed to update booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Confirm - update booking: %v", ErrInternal, err)
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: booking id=%s code=%s confirmed", updated.ID, updated.BookingCode)
	s.afterMutation(ctx, updated, events.TypeBookingConfirmed)
	return updated, nil
}

// Cancel releases the booking's slots back to available. Cancelled bookings
// drop out of the customer's money aggregates. An admin override must carry
// a reason; a regular cancellation may omit it.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, bookingID string, adminOverride bool, reason string) (*domain.Booking, error) {
	reason = strings.TrimSpace(reason)
	if adminOverride {
		if !actor.IsAdmin() {
			s.logger.Warn("Cancel: override by user=%s denied, admin authority required", actor.UserID)
			return nil, ErrAccessDenied
		}
		if reason == "" {
			return nil, ErrReasonRequired
		}
	}
	if len(reason) > domain.MaxStatusReasonLength {
		return nil, fmt.Errorf("%w: reason too long", ErrInvalidInput)
	}

	var updated *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		b, err := s.getBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if !actor.CanAccessNailTech(b.NailTechID) {
			s.logger.Warn("Cancel: access denied for user=%s to booking id=%s", actor.UserID, bookingID)
			return ErrAccessDenied
		}
		if !b.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%s in status=%s cannot be cancelled", bookingID, b.Status)
			return ErrCannotCancel
		}

		if err := s.slotRepo.Release(ctx, b.SlotIDs); err != nil {
			s.logger.Error("Cancel: failed to release slots for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - release slots: %v", ErrInternal, err)
		}

		b.Status = domain.StatusCancelled
		if reason != "" {
			b.StatusReason = &reason
		}
		if err := s.bookingRepo.Update(ctx, b); err != nil {
			s.logger.Error("Cancel: failed to update booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - update booking: %v", ErrInternal, err)
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: booking id=%s code=%s cancelled: %s", updated.ID, updated.BookingCode, reason)
	s.afterMutation(ctx, updated, events.TypeBookingCancelled)
	return updated, nil
}

// MarkRescheduled closes a booking that is being replaced by a new one made
// on different slots. The held slots go back to available; the replacement
// booking is created separately through the normal flow.
func (s *Service) MarkRescheduled(ctx context.Context, actor domain.Actor, bookingID, reason string) (*domain.Booking, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}
	if len(reason) > domain.MaxStatusReasonLength {
		return nil, fmt.Errorf("%w: reason too long", ErrInvalidInput)
	}

	var updated *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		b, err := s.getBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if !actor.CanAccessNailTech(b.NailTechID) {
			s.logger.Warn("MarkRescheduled: access denied for user=%s to booking id=%s", actor.UserID, bookingID)
			return ErrAccessDenied
		}
		if !b.CanBeRescheduled() {
			s.logger.Warn("MarkRescheduled: booking id=%s in status=%s cannot be rescheduled", bookingID, b.Status)
			return ErrCannotReschedule
		}

		if err := s.slotRepo.Release(ctx, b.SlotIDs); err != nil {
			s.logger.Error("MarkRescheduled: failed to release slots for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: MarkRescheduled - release slots: %v", ErrInternal, err)
		}

		b.Status = domain.StatusRescheduled
		b.StatusReason = &reason
		if err := s.bookingRepo.Update(ctx, b); err != nil {
			s.logger.Error("MarkRescheduled: failed to update booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: MarkRescheduled - update booking: %v", ErrInternal, err)
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("MarkRescheduled: booking id=%s code=%s marked rescheduled: %s", updated.ID, updated.BookingCode, reason)
	s.afterMutation(ctx, updated, events.TypeBookingRescheduled)
	return updated, nil
}

// MarkCompleted records service delivery. Slots stay consumed.
func (s *Service) MarkCompleted(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Booking, error) {
	var updated *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		b, err := s.getBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if !actor.CanAccessNailTech(b.NailTechID) {
			s.logger.Warn("MarkCompleted: access denied for user=%s to booking id=%s", actor.UserID, bookingID)
			return ErrAccessDenied
		}
		if !b.CanBeCompleted() {
			s.logger.Warn("MarkCompleted: booking id=%s in status=%s cannot be completed", bookingID, b.Status)
			return ErrCannotComplete
		}

		now := s.clock.Now()
		b.Status = domain.StatusCompleted
		b.CompletedAt = &now
		if err := s.bookingRepo.Update(ctx, b); err != nil {
			s.logger.Error("MarkCompleted: failed to update booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: MarkCompleted - update booking: %v", ErrInternal, err)
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("MarkCompleted: booking id=%s code=%s completed", updated.ID, updated.BookingCode)
	s.afterMutation(ctx, updated, events.TypeBookingCompleted)
	return updated, nil
}

// MarkNoShow records that the client did not attend. The slots stay
// consumed; the client occupied them without attending.
func (s *Service) MarkNoShow(ctx context.Context, actor domain.Actor, bookingID, reason string) (*domain.Booking, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}
	if len(reason) > domain.MaxStatusReasonLength {
		return nil, fmt.Errorf("%w: reason too long", ErrInvalidInput)
	}

	var updated *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		b, err := s.getBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if !actor.CanAccessNailTech(b.NailTechID) {
			s.logger.Warn("MarkNoShow: access denied for user=%s to booking id=%s", actor.UserID, bookingID)
			return ErrAccessDenied
		}
		if !b.CanBeMarkedNoShow() {
			s.logger.Warn("MarkNoShow: booking id=%s in status=%s cannot be marked no-show", bookingID, b.Status)
			return ErrCannotMarkNoShow
		}

		b.Status = domain.StatusNoShow
		b.StatusReason = &reason
		if err := s.bookingRepo.Update(ctx, b); err != nil {
			s.logger.Error("MarkNoShow: failed to update booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: MarkNoShow - update booking: %v", ErrInternal, err)
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("MarkNoShow: booking id=%s code=%s marked no-show: %s", updated.ID, updated.BookingCode, reason)
	s.afterMutation(ctx, updated, events.TypeBookingNoShow)
	return updated, nil
}

// NotesInput carries the editable note fields. Nil means "leave unchanged".
type NotesInput struct {
	ClientNotes  *string
	AdminNotes   *string
	ClientPhotos []string
}

// UpdateNotes edits the booking's free-text fields and photo references.
func (s *Service) UpdateNotes(ctx context.Context, actor domain.Actor, bookingID string, in NotesInput) (*domain.Booking, error) {
	if in.ClientNotes != nil && len(*in.ClientNotes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: client notes too long", ErrInvalidInput)
	}
	if in.AdminNotes != nil && len(*in.AdminNotes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: admin notes too long", ErrInvalidInput)
	}

	var updated *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		b, err := s.getBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if !actor.CanAccessNailTech(b.NailTechID) {
			s.logger.Warn("UpdateNotes: access denied for user=%s to booking id=%s", actor.UserID, bookingID)
			return ErrAccessDenied
		}

		if in.ClientNotes != nil {
			b.ClientNotes = in.ClientNotes
		}
		if in.AdminNotes != nil {
			b.AdminNotes = in.AdminNotes
		}
		if in.ClientPhotos != nil {
			b.ClientPhotos = in.ClientPhotos
		}
		if err := s.bookingRepo.Update(ctx, b); err != nil {
			s.logger.Error("UpdateNotes: failed to update booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateNotes - update booking: %v", ErrInternal, err)
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateNotes: booking id=%s notes updated", updated.ID)
	return updated, nil
}

// getBooking loads a booking and maps storage sentinels to service ones.
func (s *Service) getBooking(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("getBooking: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getBooking: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: getBooking - repository error: %v", ErrInternal, err)
	}
	return b, nil
}

// afterMutation runs the post-commit side effects: ledger recompute and the
// lifecycle event. Both are best-effort; the booking state already committed.
func (s *Service) afterMutation(ctx context.Context, b *domain.Booking, eventType events.Type) {
	if err := s.ledger.RecomputeLedger(ctx, b.CustomerID); err != nil {
		s.logger.Error("afterMutation: ledger recompute failed for customer=%s: %v", b.CustomerID, err)
	}

	customer, err := s.customers.GetByID(ctx, b.CustomerID)
	if err != nil {
		s.logger.Warn("afterMutation: failed to load customer=%s for event: %v", b.CustomerID, err)
	}
	s.emitter.Emit(events.Event{
		Type:       eventType,
		Booking:    b,
		Customer:   customer,
		OccurredAt: s.clock.Now(),
	})
}
