package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gleamnails/GN-BookingService/internal/domain"
	customerRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/customer"
)

// Service owns customer records and their ledger aggregates.
type Service struct {
	customerRepo CustomerRepository
	bookingRepo  BookingRepository
	logger       Logger
}

// NewService creates a customer service.
func NewService(customerRepo CustomerRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		customerRepo: customerRepo,
		bookingRepo:  bookingRepo,
		logger:       logger,
	}
}

// GetByID fetches one customer with its ledger.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	c, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("GetByID: customer id=%s not found", id)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetByID: repository error for customer id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return c, nil
}

// NewCustomerInput carries the contact details collected on the booking form.
type NewCustomerInput struct {
	Name           string
	Phone          string
	Email          *string
	SocialHandle   *string
	ReferralSource *string
}

// FindOrCreate resolves the booking form's contact details to a customer.
// The phone number is the identity key: a match reuses the existing record
// (reactivating it if it was deactivated), a miss creates a new one.
func (s *Service) FindOrCreate(ctx context.Context, in NewCustomerInput) (*domain.Customer, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" || in.Phone == "" {
		s.logger.Warn("FindOrCreate: missing name or phone")
		return nil, fmt.Errorf("%w: name and phone are required", ErrInvalidInput)
	}

	existing, err := s.customerRepo.GetByPhone(ctx, in.Phone)
	if err == nil {
		if !existing.IsActive {
			s.logger.Info("FindOrCreate: reactivating customer id=%s phone=%s", existing.ID, in.Phone)
			if err := s.customerRepo.SetActive(ctx, existing.ID, true); err != nil {
				s.logger.Error("FindOrCreate: failed to reactivate customer id=%s: %v", existing.ID, err)
				return nil, fmt.Errorf("%w: FindOrCreate - reactivate customer: %v", ErrInternal, err)
			}
			existing.IsActive = true
		}
		s.logger.Info("FindOrCreate: matched existing customer id=%s by phone", existing.ID)
		return existing, nil
	}
	if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		s.logger.Error("FindOrCreate: repository error for phone=%s: %v", in.Phone, err)
		return nil, fmt.Errorf("%w: FindOrCreate - repository error: %v", ErrInternal, err)
	}

	c := &domain.Customer{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Phone:          in.Phone,
		Email:          in.Email,
		SocialHandle:   in.SocialHandle,
		ReferralSource: in.ReferralSource,
		IsActive:       true,
		Stats: domain.CustomerStats{
			ClientType: domain.ClientNew,
		},
	}

	created, err := s.customerRepo.Create(ctx, c)
	if err != nil {
		if errors.Is(err, customerRepo.ErrDuplicatePhone) {
			// Lost a race with a concurrent booking for the same phone.
			s.logger.Warn("FindOrCreate: concurrent create for phone=%s, refetching", in.Phone)
			return s.retryByPhone(ctx, in.Phone)
		}
		s.logger.Error("FindOrCreate: failed to create customer phone=%s: %v", in.Phone, err)
		return nil, fmt.Errorf("%w: FindOrCreate - create customer: %v", ErrInternal, err)
	}

	s.logger.Info("FindOrCreate: created customer id=%s", created.ID)
	return created, nil
}

func (s *Service) retryByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	c, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		s.logger.Error("retryByPhone: repository error for phone=%s: %v", phone, err)
		return nil, fmt.Errorf("%w: retryByPhone - repository error: %v", ErrInternal, err)
	}
	return c, nil
}

// RecomputeLedger rebuilds the customer's aggregates from the full booking
// history and overwrites the stored values. Idempotent, safe to call after
// every booking mutation.
func (s *Service) RecomputeLedger(ctx context.Context, customerID string) error {
	bookings, err := s.bookingRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error("RecomputeLedger: failed to list bookings for customer=%s: %v", customerID, err)
		return fmt.Errorf("%w: RecomputeLedger - list bookings: %v", ErrInternal, err)
	}

	stats := domain.ComputeCustomerStats(bookings)
	if err := s.customerRepo.UpdateStats(ctx, customerID, stats); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("RecomputeLedger: customer id=%s not found", customerID)
			return ErrCustomerNotFound
		}
		s.logger.Error("RecomputeLedger: failed to update stats for customer=%s: %v", customerID, err)
		return fmt.Errorf("%w: RecomputeLedger - update stats: %v", ErrInternal, err)
	}

	s.logger.Info("RecomputeLedger: customer=%s bookings=%d completed=%d spent=%s",
		customerID, stats.TotalBookings, stats.CompletedBookings, stats.TotalSpent.StringFixed(2))
	return nil
}

// Deactivate soft-disables a customer. History and ledger stay intact.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	if err := s.customerRepo.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("Deactivate: customer id=%s not found", id)
			return ErrCustomerNotFound
		}
		s.logger.Error("Deactivate: repository error for customer id=%s: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("Deactivate: customer id=%s deactivated", id)
	return nil
}

// Delete removes a customer permanently. Blocked while the customer still
// holds pending or confirmed bookings.
func (s *Service) Delete(ctx context.Context, id string) error {
	active, err := s.bookingRepo.CountActiveByCustomer(ctx, id)
	if err != nil {
		s.logger.Error("Delete: failed to count active bookings for customer=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - count active bookings: %v", ErrInternal, err)
	}
	if active > 0 {
		s.logger.Warn("Delete: customer id=%s has %d active bookings", id, active)
		return ErrHasActiveBookings
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("Delete: customer id=%s not found", id)
			return ErrCustomerNotFound
		}
		s.logger.Error("Delete: repository error for customer id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: customer id=%s deleted", id)
	return nil
}
