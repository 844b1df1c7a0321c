package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Pricer applies the flat tax rate and shipping fee to a seller group. Build
// it with NewPricer; the zero value is rejected by NewService.
type Pricer struct {
	taxRate      decimal.Decimal
	shippingFlat int64
	ready        bool
}

// NewPricer validates rate in [0, 1) and a non-negative shipping fee.
func NewPricer(taxRate decimal.Decimal, flatShippingCents int64) (Pricer, error) {
	if taxRate.IsNegative() || taxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return Pricer{}, fmt.Errorf("tax rate must be in [0,1), got %s", taxRate)
	}
	if flatShippingCents < 0 {
		return Pricer{}, fmt.Errorf("flat shipping must be non-negative, got %d", flatShippingCents)
	}
	return Pricer{taxRate: taxRate, shippingFlat: flatShippingCents, ready: true}, nil
}

// Price fills the group's subtotal, tax, shipping and total. Tax is rounded
// half away from zero to the cent. Totals that do not fit in int64 cents are
// rejected with a validation error naming the offending item.
func (p Pricer) Price(group *SellerOrderGroup) error {
	subtotal := decimal.Zero
	for _, item := range group.Items {
		subtotal = subtotal.Add(decimal.NewFromInt(item.LineTotalCents))
		if _, ok := centsFrom(subtotal); !ok {
			return amountOverflow(item)
		}
	}
	tax := subtotal.Mul(p.taxRate).Round(0)
	total, ok := centsFrom(subtotal.Add(tax).Add(decimal.NewFromInt(p.shippingFlat)))
	if !ok {
		if len(group.Items) == 0 {
			return fmt.Errorf("seller %s: order amount exceeds the supported range", group.SellerID)
		}
		return amountOverflow(group.Items[len(group.Items)-1])
	}

	group.SubtotalCents = subtotal.IntPart()
	group.TaxCents = tax.IntPart()
	group.ShippingCents = p.shippingFlat
	group.TotalCents = total
	return nil
}
