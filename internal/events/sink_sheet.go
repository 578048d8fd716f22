package events

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gleamnails/GN-BookingService/internal/domain"
)

// SheetClient mirrors rows into the backup spreadsheet.
type SheetClient interface {
	UpsertRow(ctx context.Context, tab, key string, values map[string]string) error
}

const (
	sheetTabBookings  = "Bookings"
	sheetTabCustomers = "Customers"
)

// SheetSink keeps the spreadsheet backup in step with booking and customer
// state. Every event refreshes the booking row; customer rows refresh when
// the ledger could have moved.
type SheetSink struct {
	client SheetClient
	log    Logger
}

// NewSheetSink creates the spreadsheet sink.
func NewSheetSink(client SheetClient, log Logger) *SheetSink {
	return &SheetSink{client: client, log: log}
}

// Name implements Sink.
func (s *SheetSink) Name() string {
	return "sheet"
}

// Handle implements Sink.
func (s *SheetSink) Handle(ctx context.Context, e Event) error {
	if e.Booking != nil {
		if err := s.client.UpsertRow(ctx, sheetTabBookings, e.Booking.ID, bookingRow(e.Booking)); err != nil {
			return err
		}
	}
	if e.Customer != nil {
		if err := s.client.UpsertRow(ctx, sheetTabCustomers, e.Customer.ID, customerRow(e.Customer)); err != nil {
			return err
		}
	}
	return nil
}

func bookingRow(b *domain.Booking) map[string]string {
	row := map[string]string{
		"booking_code":     b.BookingCode,
		"customer_id":      b.CustomerID,
		"nail_tech_id":     b.NailTechID,
		"slot_ids":         strings.Join(b.SlotIDs, ","),
		"service_type":     b.Service.Type,
		"service_location": string(b.Service.Location),
		"status":           string(b.Status),
		"payment_status":   string(b.PaymentStatus),
		"total":            b.Pricing.Total.StringFixed(2),
		"deposit_required": b.Pricing.DepositRequired.StringFixed(2),
		"paid_amount":      b.Pricing.PaidAmount.StringFixed(2),
		"tip_amount":       b.Pricing.TipAmount.StringFixed(2),
		"discount_amount":  b.Pricing.DiscountAmount.StringFixed(2),
		"created_at":       b.CreatedAt.Format(time.RFC3339),
		"updated_at":       b.UpdatedAt.Format(time.RFC3339),
	}
	if b.StatusReason != nil {
		row["status_reason"] = *b.StatusReason
	}
	if b.Payment.Method != nil {
		row["payment_method"] = *b.Payment.Method
	}
	return row
}

func customerRow(c *domain.Customer) map[string]string {
	row := map[string]string{
		"name":               c.Name,
		"phone":              c.Phone,
		"client_type":        string(c.Stats.ClientType),
		"total_bookings":     strconv.Itoa(c.Stats.TotalBookings),
		"completed_bookings": strconv.Itoa(c.Stats.CompletedBookings),
		"total_spent":        c.Stats.TotalSpent.StringFixed(2),
		"total_tips":         c.Stats.TotalTips.StringFixed(2),
		"total_discounts":    c.Stats.TotalDiscounts.StringFixed(2),
		"is_active":          strconv.FormatBool(c.IsActive),
	}
	if c.Email != nil {
		row["email"] = *c.Email
	}
	if c.Stats.LastVisit != nil {
		row["last_visit"] = c.Stats.LastVisit.Format(time.RFC3339)
	}
	return row
}
