// Package catalog reads the product and variant state that checkout prices against.
package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/marketplace-checkout/pkg/db/models"
	pkgerrors "github.com/angelmondragon/marketplace-checkout/pkg/errors"
)

// Reader exposes product and variant lookups. Missing rows are reported as
// CodeNotFound; filtering on approval and active flags is left to callers.
type Reader interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindVariant(ctx context.Context, productID, variantID uuid.UUID) (*models.ProductVariant, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog reader bound to the provided DB.
func NewRepository(db *gorm.DB) Reader {
	return &repository{db: db}
}

func (r *repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, mapLookupError(err, "product not found")
	}
	return &product, nil
}

// FindVariant loads a variant scoped to its product.
func (r *repository) FindVariant(ctx context.Context, productID, variantID uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", variantID, productID).
		First(&variant).Error
	if err != nil {
		return nil, mapLookupError(err, "variant not found")
	}
	return &variant, nil
}

func mapLookupError(err error, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog lookup failed")
}
