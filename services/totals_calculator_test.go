package services

import (
	"math/rand"
	"testing"

	"github.com/mizanhq/mizan-api/types/business"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(rows ...[3]string) []business.LineItem {
	result := make([]business.LineItem, 0, len(rows))
	for _, row := range rows {
		result = append(result, business.LineItem{
			Description: row[0],
			Quantity:    dec(row[1]),
			UnitPrice:   dec(row[2]),
		})
	}
	return result
}

func TestTotalsCalculator_Compute(t *testing.T) {
	calc := NewTotalsCalculator()

	tests := []struct {
		name            string
		items           []business.LineItem
		discountPercent string
		vatPercent      string
		want            business.TotalsBreakdown
	}{
		{
			name:            "single item with discount and vat",
			items:           items([3]string{"widget", "2", "100"}),
			discountPercent: "10",
			vatPercent:      "15",
			want: business.TotalsBreakdown{
				Subtotal:       dec("200"),
				DiscountAmount: dec("20"),
				TaxableAmount:  dec("180"),
				VATAmount:      dec("27"),
				TotalAmount:    dec("207"),
			},
		},
		{
			name:            "no items",
			items:           nil,
			discountPercent: "0",
			vatPercent:      "15",
			want: business.TotalsBreakdown{
				Subtotal:       decimal.Zero,
				DiscountAmount: decimal.Zero,
				TaxableAmount:  decimal.Zero,
				VATAmount:      decimal.Zero,
				TotalAmount:    decimal.Zero,
			},
		},
		{
			name:            "zero discount and vat",
			items:           items([3]string{"a", "3", "9.99"}),
			discountPercent: "0",
			vatPercent:      "0",
			want: business.TotalsBreakdown{
				Subtotal:       dec("29.97"),
				DiscountAmount: dec("0"),
				TaxableAmount:  dec("29.97"),
				VATAmount:      dec("0"),
				TotalAmount:    dec("29.97"),
			},
		},
		{
			name:            "hundred percent discount",
			items:           items([3]string{"a", "1", "50"}),
			discountPercent: "100",
			vatPercent:      "15",
			want: business.TotalsBreakdown{
				Subtotal:       dec("50"),
				DiscountAmount: dec("50"),
				TaxableAmount:  dec("0"),
				VATAmount:      dec("0"),
				TotalAmount:    dec("0"),
			},
		},
		{
			name:            "fractional quantities round half up once",
			items:           items([3]string{"a", "3", "0.115"}),
			discountPercent: "0",
			vatPercent:      "0",
			want: business.TotalsBreakdown{
				// 3 * 0.115 = 0.345 accumulates at full precision and
				// rounds half up to 0.35 at output
				Subtotal:       dec("0.35"),
				DiscountAmount: dec("0"),
				TaxableAmount:  dec("0.35"),
				VATAmount:      dec("0"),
				TotalAmount:    dec("0.35"),
			},
		},
		{
			name:            "discount rounding carries into taxable",
			items:           items([3]string{"a", "1", "10.01"}),
			discountPercent: "12.5",
			vatPercent:      "15",
			want: business.TotalsBreakdown{
				// raw discount 1.25125 rounds to 1.25; taxable is
				// derived from the rounded figures so everything
				// reconciles
				Subtotal:       dec("10.01"),
				DiscountAmount: dec("1.25"),
				TaxableAmount:  dec("8.76"),
				VATAmount:      dec("1.31"),
				TotalAmount:    dec("10.07"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Compute(tt.items, dec(tt.discountPercent), dec(tt.vatPercent))
			require.NoError(t, err)

			assert.True(t, tt.want.Subtotal.Equal(got.Subtotal), "subtotal: want %s got %s", tt.want.Subtotal, got.Subtotal)
			assert.True(t, tt.want.DiscountAmount.Equal(got.DiscountAmount), "discount: want %s got %s", tt.want.DiscountAmount, got.DiscountAmount)
			assert.True(t, tt.want.TaxableAmount.Equal(got.TaxableAmount), "taxable: want %s got %s", tt.want.TaxableAmount, got.TaxableAmount)
			assert.True(t, tt.want.VATAmount.Equal(got.VATAmount), "vat: want %s got %s", tt.want.VATAmount, got.VATAmount)
			assert.True(t, tt.want.TotalAmount.Equal(got.TotalAmount), "total: want %s got %s", tt.want.TotalAmount, got.TotalAmount)
		})
	}
}

func TestTotalsCalculator_Compute_InvalidInput(t *testing.T) {
	calc := NewTotalsCalculator()

	tests := []struct {
		name            string
		items           []business.LineItem
		discountPercent string
		vatPercent      string
		wantField       string
	}{
		{
			name:            "negative discount",
			items:           items([3]string{"a", "1", "10"}),
			discountPercent: "-1",
			vatPercent:      "15",
			wantField:       "discount_percent",
		},
		{
			name:            "discount above hundred",
			items:           items([3]string{"a", "1", "10"}),
			discountPercent: "100.01",
			vatPercent:      "15",
			wantField:       "discount_percent",
		},
		{
			name:            "vat above hundred",
			items:           items([3]string{"a", "1", "10"}),
			discountPercent: "0",
			vatPercent:      "101",
			wantField:       "vat_percent",
		},
		{
			name:            "zero quantity",
			items:           items([3]string{"a", "0", "10"}),
			discountPercent: "0",
			vatPercent:      "0",
			wantField:       "quantity",
		},
		{
			name:            "negative unit price",
			items:           items([3]string{"a", "1", "-10"}),
			discountPercent: "0",
			vatPercent:      "0",
			wantField:       "unit_price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Compute(tt.items, dec(tt.discountPercent), dec(tt.vatPercent))
			require.Error(t, err)

			var verr *business.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

// The reported amounts must reconcile exactly no matter the inputs:
// taxable = subtotal - discount and total = taxable + vat, at 2 decimal
// places with no residue.
func TestTotalsCalculator_Compute_Reconciliation(t *testing.T) {
	calc := NewTotalsCalculator()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		var lineItems []business.LineItem
		for n := rng.Intn(6) + 1; n > 0; n-- {
			lineItems = append(lineItems, business.LineItem{
				Description: "item",
				Quantity:    decimal.NewFromInt(int64(rng.Intn(9999) + 1)).Div(decimal.NewFromInt(100)),
				UnitPrice:   decimal.NewFromInt(int64(rng.Intn(999999))).Div(decimal.NewFromInt(100)),
			})
		}
		discount := decimal.NewFromInt(int64(rng.Intn(10001))).Div(decimal.NewFromInt(100))
		vat := decimal.NewFromInt(int64(rng.Intn(10001))).Div(decimal.NewFromInt(100))

		got, err := calc.Compute(lineItems, discount, vat)
		require.NoError(t, err)

		require.True(t, got.TaxableAmount.Equal(got.Subtotal.Sub(got.DiscountAmount)),
			"taxable %s != subtotal %s - discount %s", got.TaxableAmount, got.Subtotal, got.DiscountAmount)
		require.True(t, got.TotalAmount.Equal(got.TaxableAmount.Add(got.VATAmount)),
			"total %s != taxable %s + vat %s", got.TotalAmount, got.TaxableAmount, got.VATAmount)
		require.True(t, got.TotalAmount.Exponent() >= -2, "total has more than 2 decimal places: %s", got.TotalAmount)
	}
}

// Recomputing from the same raw fields must never drift.
func TestTotalsCalculator_Compute_Stable(t *testing.T) {
	calc := NewTotalsCalculator()
	lineItems := items([3]string{"a", "7", "3.33"}, [3]string{"b", "1.5", "19.99"})

	first, err := calc.Compute(lineItems, dec("7.5"), dec("15"))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := calc.Compute(lineItems, dec("7.5"), dec("15"))
		require.NoError(t, err)
		assert.True(t, first.TotalAmount.Equal(again.TotalAmount))
		assert.True(t, first.VATAmount.Equal(again.VATAmount))
	}
}
