// Package sellers resolves seller identity for checkout.
package sellers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/marketplace-checkout/pkg/db/models"
	pkgerrors "github.com/angelmondragon/marketplace-checkout/pkg/errors"
)

// Lookup returns the seller with the given id or a CodeNotFound error.
type Lookup interface {
	FindSeller(ctx context.Context, id uuid.UUID) (*models.Seller, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Lookup {
	return &repository{db: db}
}

func (r *repository) FindSeller(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&seller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seller lookup failed")
	}
	return &seller, nil
}
