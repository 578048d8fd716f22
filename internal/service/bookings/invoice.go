package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/internal/events"
	quotationRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/quotation"
)

// InvoiceItemInput is one invoice line as submitted.
type InvoiceItemInput struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// InvoiceInput carries an invoice create-or-replace. DiscountRate takes
// precedence over DiscountAmount when both are set.
type InvoiceInput struct {
	Items          []InvoiceItemInput
	DiscountRate   *decimal.Decimal
	DiscountAmount *decimal.Decimal
	Notes          *string
}

// UpsertInvoice creates or replaces the booking's quotation and mirrors its
// totals onto the booking. Only confirmed bookings can be invoiced. Squeeze-in
// slots add their fee here, at invoice time.
func (s *Service) UpsertInvoice(ctx context.Context, actor domain.Actor, bookingID string, in InvoiceInput) (*domain.Quotation, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one invoice item is required", ErrInvalidInput)
	}
	if len(in.Items) > domain.MaxInvoiceItems {
		return nil, fmt.Errorf("%w: too many invoice items", ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.Description == "" {
			return nil, fmt.Errorf("%w: item description is required", ErrInvalidInput)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", ErrInvalidInput)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item unit price must not be negative", ErrInvalidAmount)
		}
	}
	if in.DiscountRate != nil && (in.DiscountRate.IsNegative() || in.DiscountRate.GreaterThan(decimal.NewFromInt(1))) {
		return nil, fmt.Errorf("%w: discount rate must be between 0 and 1", ErrInvalidAmount)
	}
	if in.DiscountAmount != nil && in.DiscountAmount.IsNegative() {
		return nil, fmt.Errorf("%w: discount amount must not be negative", ErrInvalidAmount)
	}

	var (
		updated *domain.Booking
		result  *domain.Quotation
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		b, err := s.getBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if !actor.CanAccessNailTech(b.NailTechID) {
			s.logger.Warn("UpsertInvoice: access denied for user=%s to booking id=%s", actor.UserID, bookingID)
			return ErrAccessDenied
		}
		if b.Status != domain.StatusConfirmed {
			s.logger.Warn("UpsertInvoice: booking id=%s in status=%s cannot be invoiced", bookingID, b.Status)
			return ErrInvoiceNotAllowed
		}

		fee, err := s.squeezeInFee(ctx, b)
		if err != nil {
			return err
		}

		// The id only lands on first insert; when the booking already has a
		// quotation the upsert keeps the stored id and returns it.
		q := &domain.Quotation{
			ID:           uuid.NewString(),
			BookingID:    b.ID,
			Items:        make([]domain.QuotationItem, 0, len(in.Items)),
			SqueezeInFee: fee,
			Notes:        in.Notes,
		}
		for _, item := range in.Items {
			q.Items = append(q.Items, domain.QuotationItem{
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
			})
		}
		if in.DiscountRate != nil {
			q.DiscountRate = *in.DiscountRate
		} else if in.DiscountAmount != nil {
			q.DiscountAmount = *in.DiscountAmount
		}
		q.ComputeTotals()

		saved, err := s.quotationRepo.Upsert(ctx, q)
		if err != nil {
			s.logger.Error("UpsertInvoice: failed to upsert quotation for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: UpsertInvoice - upsert quotation: %v", ErrInternal, err)
		}

		// The booking-side invoice summary must stay equal to the quotation.
		b.Invoice.QuotationID = &saved.ID
		b.Invoice.Total = saved.TotalAmount
		b.Invoice.CreatedAt = &saved.CreatedAt
		b.Pricing.Total = saved.TotalAmount
		b.Pricing.DiscountAmount = saved.DiscountAmount
		b.PaymentStatus = domain.DerivePaymentStatus(b.Pricing.PaidAmount, b.Pricing.DepositRequired, b.Pricing.Total)
		s.stampPaymentTimes(b)

		if err := s.bookingRepo.Update(ctx, b); err != nil {
			s.logger.Error("UpsertInvoice: failed to update booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: UpsertInvoice - update booking: %v", ErrInternal, err)
		}

		updated = b
		result = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpsertInvoice: booking id=%s quotation=%s total=%s",
		updated.ID, result.ID, result.TotalAmount.StringFixed(2))
	s.afterMutation(ctx, updated, events.TypeInvoiceUpdated)
	return result, nil
}

// GetInvoice returns the booking's quotation, if any.
func (s *Service) GetInvoice(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Quotation, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessNailTech(b.NailTechID) {
		s.logger.Warn("GetInvoice: access denied for user=%s to booking id=%s", actor.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	q, err := s.quotationRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, quotationRepo.ErrQuotationNotFound) {
			return nil, ErrInvoiceNotFound
		}
		s.logger.Error("GetInvoice: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetInvoice - repository error: %v", ErrInternal, err)
	}
	return q, nil
}

// squeezeInFee derives the invoice surcharge from the booked slot types.
func (s *Service) squeezeInFee(ctx context.Context, b *domain.Booking) (decimal.Decimal, error) {
	slots, err := s.slotRepo.GetByIDs(ctx, b.SlotIDs)
	if err != nil {
		s.logger.Error("squeezeInFee: failed to load slots for booking id=%s: %v", b.ID, err)
		return decimal.Zero, fmt.Errorf("%w: squeezeInFee - load slots: %v", ErrInternal, err)
	}
	for _, slot := range slots {
		if slot.SlotType == domain.SlotWithSqueezeFee {
			return domain.DefaultSqueezeInFee, nil
		}
	}
	return decimal.Zero, nil
}
