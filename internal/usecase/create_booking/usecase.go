// Package create_booking claims slots for a new booking. The claim runs in a
// serializable transaction so two customers racing for the same slots can
// never both win.
package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/internal/events"
	bookingRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/booking"
	nailtechRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/nailtech"
	slotRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/slot"
	"github.com/gleamnails/GN-BookingService/internal/service/customers"
)

// UseCase creates bookings from the public form.
type UseCase struct {
	bookingRepo     BookingRepository
	slotRepo        SlotRepository
	nailTechRepo    NailTechRepository
	customers       CustomerResolver
	ledger          LedgerRecomputer
	emitter         EventEmitter
	txManager       TransactionManager
	timeProvider    TimeProvider
	depositRequired decimal.Decimal
	logger          Logger
}

// NewUseCase creates the booking usecase. A zero deposit falls back to the
// salon's standing rate.
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	nailTechRepo NailTechRepository,
	customers CustomerResolver,
	ledger LedgerRecomputer,
	emitter EventEmitter,
	txManager TransactionManager,
	depositRequired decimal.Decimal,
	logger Logger,
) *UseCase {
	if depositRequired.IsZero() {
		depositRequired = domain.DefaultDepositRequired
	}
	return &UseCase{
		bookingRepo:     bookingRepo,
		slotRepo:        slotRepo,
		nailTechRepo:    nailTechRepo,
		customers:       customers,
		ledger:          ledger,
		emitter:         emitter,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		depositRequired: depositRequired,
		logger:          logger,
	}
}

// Execute runs the booking creation flow.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tech=%s slots=%d service=%s location=%s phone=%s",
		req.NailTechID, len(req.SlotIDs), req.ServiceType, req.ServiceLocation, req.CustomerPhone)

	// 1. Validate the form fields.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Current time in the salon timezone drives all date checks.
	now := uc.timeProvider.Now().In(domain.ManilaLocation())

	// 3. Resolve the technician and check they serve the requested location.
	tech, err := uc.nailTechRepo.GetByID(ctx, req.NailTechID)
	if err != nil {
		if errors.Is(err, nailtechRepo.ErrNailTechNotFound) {
			uc.logger.Warn("CreateBooking: nail tech id=%s not found", req.NailTechID)
			return nil, ErrNailTechNotFound
		}
		uc.logger.Error("CreateBooking: failed to get nail tech id=%s: %v", req.NailTechID, err)
		return nil, fmt.Errorf("%w: failed to get nail tech: %v", ErrInternal, err)
	}
	if !tech.IsActive {
		uc.logger.Warn("CreateBooking: nail tech id=%s is inactive", req.NailTechID)
		return nil, ErrNailTechInactive
	}
	if !tech.ServesLocation(req.ServiceLocation) {
		uc.logger.Warn("CreateBooking: nail tech id=%s does not serve %s", req.NailTechID, req.ServiceLocation)
		return nil, ErrLocationNotServed
	}

	var (
		result   *domain.Booking
		customer *domain.Customer
	)

	// 4. Claim the slots and create the booking atomically.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Lock the requested slot rows.
		slots, err := uc.slotRepo.GetByIDs(txCtx, req.SlotIDs)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to load slots: %v", err)
			return fmt.Errorf("%w: failed to load slots: %v", ErrInternal, err)
		}

		// 4.2. Same tech, same day, all bookable, starts in the future.
		if err := validateSlots(slots, req, now); err != nil {
			uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
			return err
		}

		// 4.3. Multi-slot bookings must occupy a consecutive run of the
		// technician's day.
		daySlots, err := uc.slotRepo.ListByRange(txCtx, domain.SlotRangeFilter{
			NailTechID:    req.NailTechID,
			From:          slots[0].Date,
			To:            slots[0].Date,
			IncludeHidden: true,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list day slots: %v", err)
			return fmt.Errorf("%w: failed to list day slots: %v", ErrInternal, err)
		}
		if err := validateContiguous(slots, daySlots); err != nil {
			uc.logger.Warn("CreateBooking: contiguity check failed for slots=%v", req.SlotIDs)
			return err
		}

		// 4.4. Resolve the customer by phone, creating on first contact.
		customer, err = uc.customers.FindOrCreate(txCtx, customers.NewCustomerInput{
			Name:           req.CustomerName,
			Phone:          req.CustomerPhone,
			Email:          req.CustomerEmail,
			SocialHandle:   req.SocialHandle,
			ReferralSource: req.ReferralSource,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to resolve customer: %v", err)
			return fmt.Errorf("%w: failed to resolve customer: %v", ErrInternal, err)
		}

		// 4.5. Allocate the next booking code for today.
		code, err := uc.bookingRepo.NextBookingCode(txCtx, now)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to allocate booking code: %v", err)
			return fmt.Errorf("%w: failed to allocate booking code: %v", ErrInternal, err)
		}

		// 4.6. Claim the slots. The conditional update guarantees at most
		// one booking wins each slot.
		if err := uc.slotRepo.TransitionStatus(txCtx, req.SlotIDs, req.NailTechID, domain.SlotAvailable, domain.SlotPending); err != nil {
			if errors.Is(err, slotRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateBooking: slot claim lost race for slots=%v", req.SlotIDs)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to claim slots: %v", err)
			return fmt.Errorf("%w: failed to claim slots: %v", ErrInternal, err)
		}

		// 4.7. Persist the booking. Slot order follows the locked rows,
		// which arrive sorted by date and start time.
		orderedIDs := make([]string, 0, len(slots))
		for _, s := range slots {
			orderedIDs = append(orderedIDs, s.ID)
		}

		booking := &domain.Booking{
			ID:          uuid.NewString(),
			BookingCode: code,
			CustomerID:  customer.ID,
			NailTechID:  req.NailTechID,
			SlotIDs:     orderedIDs,
			Service: domain.ServiceDetails{
				Type:       req.ServiceType,
				Location:   req.ServiceLocation,
				ClientType: customer.Stats.ClientType,
			},
			Status:        domain.StatusPending,
			PaymentStatus: domain.PaymentUnpaid,
			Pricing: domain.Pricing{
				Total:           decimal.Zero,
				DepositRequired: uc.depositRequired,
				PaidAmount:      decimal.Zero,
				TipAmount:       decimal.Zero,
				DiscountAmount:  decimal.Zero,
			},
			ClientNotes: req.ClientNotes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateCode) {
				uc.logger.Error("CreateBooking: booking code collision code=%s", code)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%s code=%s customer=%s",
		result.ID, result.BookingCode, result.CustomerID)

	// 5. Post-commit side effects: ledger refresh and the created event.
	if err := uc.ledger.RecomputeLedger(ctx, result.CustomerID); err != nil {
		uc.logger.Error("CreateBooking: ledger recompute failed for customer=%s: %v", result.CustomerID, err)
	}
	uc.emitter.Emit(events.Event{
		Type:       events.TypeBookingCreated,
		Booking:    result,
		Customer:   customer,
		OccurredAt: uc.timeProvider.Now(),
	})

	return toResponse(result), nil
}
