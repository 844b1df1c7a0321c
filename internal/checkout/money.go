package checkout

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/marketplace-checkout/pkg/errors"
)

// MaxLineQuantity caps the quantity of a single cart line.
const MaxLineQuantity = 10000

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// centsFrom converts an exact cent amount to int64, reporting false when it
// does not fit.
func centsFrom(amount decimal.Decimal) (int64, bool) {
	if amount.GreaterThan(maxCents) || amount.LessThan(minCents) {
		return 0, false
	}
	return amount.IntPart(), true
}

func quantityTooLarge(index int, details ItemDetails) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: quantity must not exceed %d", index, MaxLineQuantity)).
		WithDetails(details)
}

func amountOverflow(item ResolvedLineItem) error {
	sellerID := item.SellerID
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: order amount exceeds the supported range", item.Index)).
		WithDetails(ItemDetails{
			ItemIndex: item.Index,
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			SellerID:  &sellerID,
			Requested: item.Quantity,
		})
}
