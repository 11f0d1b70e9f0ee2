package services

import (
	"github.com/mizanhq/mizan-api/types/api/params"
	"github.com/mizanhq/mizan-api/types/business"
	"github.com/shopspring/decimal"
)

// TotalsCalculator turns line items plus a whole-document discount and VAT
// percentage into a reconciled monetary breakdown. It is pure and safe to
// call on every mutation.
type TotalsCalculator struct{}

// NewTotalsCalculator creates a new totals calculator
func NewTotalsCalculator() *TotalsCalculator {
	return &TotalsCalculator{}
}

var oneHundred = decimal.NewFromInt(100)

// Compute derives the breakdown from raw inputs. Accumulation happens at
// full precision; each reported amount is rounded to 2 decimal places
// (half up) exactly once, at this output boundary, so repeated
// recomputation never drifts.
//
// The reported fields reconcile exactly:
//
//	TaxableAmount = Subtotal - DiscountAmount
//	TotalAmount   = TaxableAmount + VATAmount
//
// Out-of-range percentages and negative item values are the caller's bug
// and are rejected, never clamped.
func (c *TotalsCalculator) Compute(items []business.LineItem, discountPercent, vatPercent decimal.Decimal) (business.TotalsBreakdown, error) {
	if err := validatePercent("discount_percent", discountPercent); err != nil {
		return business.TotalsBreakdown{}, err
	}
	if err := validatePercent("vat_percent", vatPercent); err != nil {
		return business.TotalsBreakdown{}, err
	}

	subtotal := decimal.Zero
	for _, item := range items {
		if !item.Quantity.IsPositive() {
			return business.TotalsBreakdown{}, business.NewValidationError("quantity", "must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return business.TotalsBreakdown{}, business.NewValidationError("unit_price", "must not be negative")
		}
		subtotal = subtotal.Add(item.LineTotal())
	}

	discountRaw := subtotal.Mul(discountPercent).Div(oneHundred)
	taxableRaw := subtotal.Sub(discountRaw)
	vatRaw := taxableRaw.Mul(vatPercent).Div(oneHundred)

	breakdown := business.TotalsBreakdown{
		Subtotal:       subtotal.Round(2),
		DiscountAmount: discountRaw.Round(2),
		VATAmount:      vatRaw.Round(2),
	}
	breakdown.TaxableAmount = breakdown.Subtotal.Sub(breakdown.DiscountAmount)
	breakdown.TotalAmount = breakdown.TaxableAmount.Add(breakdown.VATAmount)

	return breakdown, nil
}

func validatePercent(field string, pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(oneHundred) {
		return business.NewValidationError(field, "must be between 0 and 100")
	}
	return nil
}

// toLineItems converts raw line item params into owned line items,
// validating each field before any mutation takes place.
func toLineItems(raw []params.LineItemParams) ([]business.LineItem, error) {
	items := make([]business.LineItem, 0, len(raw))
	for _, item := range raw {
		if item.Description == "" {
			return nil, business.NewValidationError("description", "must not be empty")
		}
		if !item.Quantity.IsPositive() {
			return nil, business.NewValidationError("quantity", "must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return nil, business.NewValidationError("unit_price", "must not be negative")
		}
		items = append(items, business.LineItem{
			ID:          newID(),
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return items, nil
}
