// Package inventory owns the atomic stock decrement for sold variants.
package inventory

import (
	"bytes"
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/marketplace-checkout/pkg/db/models"
	pkgerrors "github.com/angelmondragon/marketplace-checkout/pkg/errors"
)

type conflictRecorder interface {
	IncInventoryConflict()
}

// Line is one variant decrement request.
type Line struct {
	ProductID uuid.UUID
	VariantID uuid.UUID
	Quantity  int
}

// ShortageDetails names the variant that could not cover the request.
type ShortageDetails struct {
	ProductID uuid.UUID `json:"productId"`
	VariantID uuid.UUID `json:"variantId"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}

// UnavailableDetails names a variant that disappeared or was deactivated.
type UnavailableDetails struct {
	ProductID uuid.UUID `json:"productId"`
	VariantID uuid.UUID `json:"variantId"`
}

// Adjuster decrements variant inventory with a single conditional update.
type Adjuster struct {
	metrics conflictRecorder
}

// NewAdjuster builds an Adjuster; metrics may be nil.
func NewAdjuster(metrics conflictRecorder) *Adjuster {
	return &Adjuster{metrics: metrics}
}

// Decrement subtracts qty from the variant only if enough stock remains.
func (a *Adjuster) Decrement(ctx context.Context, tx *gorm.DB, productID, variantID uuid.UUID, qty int) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "transaction required")
	}
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive").
			WithDetails(map[string]any{"variantId": variantID, "quantity": qty})
	}

	res := tx.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ? AND product_id = ? AND is_active = ? AND inventory >= ?", variantID, productID, true, qty).
		UpdateColumn("inventory", gorm.Expr("inventory - ?", qty))
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "decrement inventory")
	}
	if res.RowsAffected == 1 {
		return nil
	}
	return a.attribute(ctx, tx, productID, variantID, qty)
}

// DecrementAll applies every line in variant-id order so concurrent groups
// lock shared rows in the same sequence.
func (a *Adjuster) DecrementAll(ctx context.Context, tx *gorm.DB, lines []Line) error {
	ordered := make([]Line, len(lines))
	copy(ordered, lines)
	sort.SliceStable(ordered, func(i, j int) bool {
		return bytes.Compare(ordered[i].VariantID[:], ordered[j].VariantID[:]) < 0
	})
	for _, line := range ordered {
		if err := a.Decrement(ctx, tx, line.ProductID, line.VariantID, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// attribute explains a rejected decrement. It only reads; the stock is not touched.
func (a *Adjuster) attribute(ctx context.Context, tx *gorm.DB, productID, variantID uuid.UUID, qty int) error {
	var variant models.ProductVariant
	err := tx.WithContext(ctx).
		Where("id = ? AND product_id = ?", variantID, productID).
		First(&variant).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return unavailable(productID, variantID)
	case err != nil:
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant after rejected decrement")
	case !variant.IsActive:
		return unavailable(productID, variantID)
	}

	if a != nil && a.metrics != nil {
		a.metrics.IncInventoryConflict()
	}
	return pkgerrors.New(pkgerrors.CodeInsufficientInventory, "insufficient inventory").
		WithDetails(ShortageDetails{
			ProductID: productID,
			VariantID: variantID,
			Requested: qty,
			Available: variant.Inventory,
		})
}

func unavailable(productID, variantID uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeVariantUnavailable, "variant unavailable").
		WithDetails(UnavailableDetails{ProductID: productID, VariantID: variantID})
}
