package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/gleamnails/GN-BookingService/internal/domain"
)

func TestQuotation_ComputeTotals(t *testing.T) {
	q := &domain.Quotation{
		Items: []domain.QuotationItem{
			{Description: "Gel manicure", Quantity: 1, UnitPrice: decimal.NewFromInt(1200)},
			{Description: "Nail art (per nail)", Quantity: 4, UnitPrice: decimal.NewFromInt(150)},
		},
	}

	q.ComputeTotals()

	assert.True(t, q.Items[0].LineTotal.Equal(decimal.NewFromInt(1200)))
	assert.True(t, q.Items[1].LineTotal.Equal(decimal.NewFromInt(600)))
	assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(1800)))
	assert.True(t, q.TotalAmount.Equal(decimal.NewFromInt(1800)))
}

func TestQuotation_ComputeTotals_DiscountRate(t *testing.T) {
	q := &domain.Quotation{
		Items: []domain.QuotationItem{
			{Description: "Mani-pedi", Quantity: 1, UnitPrice: decimal.NewFromInt(2000)},
		},
		DiscountRate: decimal.NewFromFloat(0.10),
	}

	q.ComputeTotals()

	// Rate overrides any stale discount amount.
	assert.True(t, q.DiscountAmount.Equal(decimal.NewFromInt(200)), "discount=%s", q.DiscountAmount)
	assert.True(t, q.TotalAmount.Equal(decimal.NewFromInt(1800)))
}

func TestQuotation_ComputeTotals_FixedDiscountAndSqueezeFee(t *testing.T) {
	q := &domain.Quotation{
		Items: []domain.QuotationItem{
			{Description: "Gel extension", Quantity: 1, UnitPrice: decimal.NewFromInt(2500)},
		},
		DiscountAmount: decimal.NewFromInt(300),
		SqueezeInFee:   decimal.NewFromInt(500),
	}

	q.ComputeTotals()

	assert.True(t, q.TotalAmount.Equal(decimal.NewFromInt(2700)), "total=%s", q.TotalAmount)
}

func TestQuotation_ComputeTotals_Recompute(t *testing.T) {
	q := &domain.Quotation{
		Items: []domain.QuotationItem{
			{Description: "Polish change", Quantity: 2, UnitPrice: decimal.NewFromInt(400)},
		},
	}
	q.ComputeTotals()
	first := q.TotalAmount

	q.ComputeTotals()
	assert.True(t, q.TotalAmount.Equal(first), "recompute must be idempotent")
}
