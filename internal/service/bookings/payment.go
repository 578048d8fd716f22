package bookings

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/internal/events"
)

// PaymentInput carries a payment update. Amounts are absolute values, not
// deltas; nil means "leave unchanged". AllowCompleted opens the one
// exception to the completed-booking lock, for correcting a closed record.
type PaymentInput struct {
	PaidAmount     *decimal.Decimal
	TipAmount      *decimal.Decimal
	Method         *string
	ProofRef       *string
	MarkRefunded   bool
	AllowCompleted bool
}

// UpdatePayment records payment state and re-derives the payment status from
// the amounts. Crossing the deposit threshold stamps DepositPaidAt; crossing
// the total stamps FullyPaidAt. Lowering the paid amount recomputes downward
// and clears stamps that no longer hold. Recording payments is admin
// territory: the money trail is not editable by staff.
func (s *Service) UpdatePayment(ctx context.Context, actor domain.Actor, bookingID string, in PaymentInput) (*domain.Booking, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("UpdatePayment: user=%s lacks admin authority for payment edits", actor.UserID)
		return nil, ErrAccessDenied
	}
	if in.PaidAmount != nil && in.PaidAmount.IsNegative() {
		return nil, fmt.Errorf("%w: paid amount must not be negative", ErrInvalidAmount)
	}
	if in.TipAmount != nil && in.TipAmount.IsNegative() {
		return nil, fmt.Errorf("%w: tip amount must not be negative", ErrInvalidAmount)
	}

	var updated *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		b, err := s.getBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.IsTerminal() && !in.AllowCompleted {
			s.logger.Warn("UpdatePayment: booking id=%s is %s, edit needs allowCompleted", bookingID, b.Status)
			return ErrPaymentLocked
		}

		if in.PaidAmount != nil {
			b.Pricing.PaidAmount = *in.PaidAmount
		}
		if in.TipAmount != nil {
			b.Pricing.TipAmount = *in.TipAmount
		}
		if in.Method != nil {
			b.Payment.Method = in.Method
		}
		if in.ProofRef != nil {
			b.Payment.ProofRef = in.ProofRef
		}

		if in.MarkRefunded {
			b.PaymentStatus = domain.PaymentRefunded
		} else {
			b.PaymentStatus = domain.DerivePaymentStatus(b.Pricing.PaidAmount, b.Pricing.DepositRequired, b.Pricing.Total)
		}
		s.stampPaymentTimes(b)

		if err := s.bookingRepo.Update(ctx, b); err != nil {
			s.logger.Error("UpdatePayment: failed to update booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: UpdatePayment - update booking: %v", ErrInternal, err)
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdatePayment: booking id=%s paid=%s status=%s",
		updated.ID, updated.Pricing.PaidAmount.StringFixed(2), updated.PaymentStatus)
	s.afterMutation(ctx, updated, events.TypePaymentUpdated)
	return updated, nil
}

func (s *Service) stampPaymentTimes(b *domain.Booking) {
	now := s.clock.Now()

	switch b.PaymentStatus {
	case domain.PaymentPartial:
		if b.Payment.DepositPaidAt == nil {
			b.Payment.DepositPaidAt = &now
		}
		b.Payment.FullyPaidAt = nil
	case domain.PaymentPaid:
		if b.Payment.DepositPaidAt == nil {
			b.Payment.DepositPaidAt = &now
		}
		if b.Payment.FullyPaidAt == nil {
			b.Payment.FullyPaidAt = &now
		}
	case domain.PaymentUnpaid:
		b.Payment.DepositPaidAt = nil
		b.Payment.FullyPaidAt = nil
	}
	// Refunded keeps its historical stamps.
}
