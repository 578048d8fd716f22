package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationItem is one invoice line. JSON tags define the stored shape of
// the quotation's items document.
type QuotationItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// Quotation is the pricing breakdown attached to a confirmed booking.
// A booking owns at most one quotation; it is created lazily on the first
// invoice action and updated in place afterwards.
type Quotation struct {
	ID             string
	BookingID      string
	Items          []QuotationItem
	Subtotal       decimal.Decimal
	DiscountRate   decimal.Decimal // fraction, e.g. 0.10 for 10%
	DiscountAmount decimal.Decimal
	SqueezeInFee   decimal.Decimal
	TotalAmount    decimal.Decimal

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComputeTotals fills the derived money fields from the line items.
// TotalAmount = subtotal - discountAmount + squeezeInFee. When a discount
// rate is set, the discount amount is derived from the subtotal.
func (q *Quotation) ComputeTotals() {
	subtotal := decimal.Zero
	for i := range q.Items {
		line := q.Items[i].UnitPrice.Mul(decimal.NewFromInt(int64(q.Items[i].Quantity)))
		q.Items[i].LineTotal = line
		subtotal = subtotal.Add(line)
	}
	q.Subtotal = subtotal

	if q.DiscountRate.IsPositive() {
		q.DiscountAmount = subtotal.Mul(q.DiscountRate).Round(2)
	}
	q.TotalAmount = subtotal.Sub(q.DiscountAmount).Add(q.SqueezeInFee)
}
