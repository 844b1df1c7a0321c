package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/marketplace-checkout/internal/catalog"
	"github.com/angelmondragon/marketplace-checkout/internal/sellers"
	"github.com/angelmondragon/marketplace-checkout/pkg/db/models"
	pkgerrors "github.com/angelmondragon/marketplace-checkout/pkg/errors"
)

// ResolvedLineItem is a line item priced against current catalog state.
type ResolvedLineItem struct {
	Index          int
	ProductID      uuid.UUID
	VariantID      *uuid.UUID
	SellerID       uuid.UUID
	ProductName    string
	VariantName    *string
	Quantity       int
	UnitPriceCents int64
	LineTotalCents int64
}

// Validator resolves every line item or rejects the whole cart.
type Validator struct {
	catalog catalog.Reader
	sellers sellers.Lookup
}

func NewValidator(reader catalog.Reader, lookup sellers.Lookup) (*Validator, error) {
	if reader == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if lookup == nil {
		return nil, fmt.Errorf("seller lookup required")
	}
	return &Validator{catalog: reader, sellers: lookup}, nil
}

// Validate resolves items in order and stops at the first invalid one. The
// inventory check here is an early rejection only; the decrement enforces it.
func (v *Validator) Validate(ctx context.Context, items []LineItem) ([]ResolvedLineItem, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout requires at least one item")
	}

	sellerOK := make(map[uuid.UUID]bool)
	resolved := make([]ResolvedLineItem, 0, len(items))
	for i, item := range items {
		line, err := v.resolve(ctx, i, item, sellerOK)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, line)
	}
	return resolved, nil
}

func (v *Validator) resolve(ctx context.Context, index int, item LineItem, sellerOK map[uuid.UUID]bool) (ResolvedLineItem, error) {
	details := ItemDetails{ItemIndex: index, ProductID: item.ProductID, VariantID: item.VariantID}
	if item.Quantity <= 0 {
		details.Requested = item.Quantity
		return ResolvedLineItem{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: quantity must be greater than zero", index)).
			WithDetails(details)
	}
	if item.Quantity > MaxLineQuantity {
		details.Requested = item.Quantity
		return ResolvedLineItem{}, quantityTooLarge(index, details)
	}

	product, err := v.catalog.FindProduct(ctx, item.ProductID)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return ResolvedLineItem{}, productUnavailable(details, "product not found")
		}
		return ResolvedLineItem{}, err
	}
	if !product.IsPurchasable() {
		return ResolvedLineItem{}, productUnavailable(details, "product is not available for purchase")
	}

	sellerID := product.SellerID
	details.SellerID = &sellerID
	if err := v.checkSeller(ctx, sellerID, sellerOK, details); err != nil {
		return ResolvedLineItem{}, err
	}

	line := ResolvedLineItem{
		Index:          index,
		ProductID:      product.ID,
		SellerID:       sellerID,
		ProductName:    product.Name,
		Quantity:       item.Quantity,
		UnitPriceCents: product.BasePriceCents,
	}

	if item.VariantID != nil {
		variant, err := v.resolveVariant(ctx, product, *item.VariantID, details)
		if err != nil {
			return ResolvedLineItem{}, err
		}
		if variant.Inventory < item.Quantity {
			available := variant.Inventory
			details.Requested = item.Quantity
			details.Available = &available
			return ResolvedLineItem{}, pkgerrors.New(pkgerrors.CodeInsufficientInventory, "insufficient inventory").
				WithDetails(details)
		}
		variantID := variant.ID
		variantName := variant.Name
		line.VariantID = &variantID
		line.VariantName = &variantName
		line.UnitPriceCents = variant.PriceCents
	}

	total, ok := centsFrom(decimal.NewFromInt(line.UnitPriceCents).Mul(decimal.NewFromInt(int64(line.Quantity))))
	if !ok {
		return ResolvedLineItem{}, amountOverflow(line)
	}
	line.LineTotalCents = total
	return line, nil
}

func (v *Validator) checkSeller(ctx context.Context, sellerID uuid.UUID, sellerOK map[uuid.UUID]bool, details ItemDetails) error {
	if ok, seen := sellerOK[sellerID]; seen {
		if !ok {
			return productUnavailable(details, "seller is not active")
		}
		return nil
	}
	seller, err := v.sellers.FindSeller(ctx, sellerID)
	switch {
	case pkgerrors.IsCode(err, pkgerrors.CodeNotFound):
		sellerOK[sellerID] = false
		return productUnavailable(details, "seller not found")
	case err != nil:
		return err
	}
	sellerOK[sellerID] = seller.IsActive
	if !seller.IsActive {
		return productUnavailable(details, "seller is not active")
	}
	return nil
}

func (v *Validator) resolveVariant(ctx context.Context, product *models.Product, variantID uuid.UUID, details ItemDetails) (*models.ProductVariant, error) {
	variant, err := v.catalog.FindVariant(ctx, product.ID, variantID)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return nil, variantUnavailable(details, "variant not found")
		}
		return nil, err
	}
	if variant.ProductID != product.ID || !variant.IsActive {
		return nil, variantUnavailable(details, "variant is not available for purchase")
	}
	return variant, nil
}

func productUnavailable(details ItemDetails, msg string) error {
	return pkgerrors.New(pkgerrors.CodeProductUnavailable, msg).WithDetails(details)
}

func variantUnavailable(details ItemDetails, msg string) error {
	return pkgerrors.New(pkgerrors.CodeVariantUnavailable, msg).WithDetails(details)
}
