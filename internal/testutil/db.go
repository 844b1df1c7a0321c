// Package testutil provides sqlite-backed fixtures shared by repository tests.
package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/marketplace-checkout/pkg/db"
	"github.com/angelmondragon/marketplace-checkout/pkg/db/models"
	"github.com/angelmondragon/marketplace-checkout/pkg/enums"
)

// NewDB opens a private in-memory sqlite database with every checkout table.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:checkout_" + uuid.NewString() + "?mode=memory&cache=shared&_busy_timeout=5000"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

// NewClient wraps NewDB in a db.Client.
func NewClient(t *testing.T) (*db.Client, *gorm.DB) {
	t.Helper()
	conn := NewDB(t)
	return db.NewFromGorm(conn), conn
}

// SeedSeller inserts an active seller.
func SeedSeller(t *testing.T, conn *gorm.DB, name string) models.Seller {
	t.Helper()
	seller := models.Seller{BusinessName: name, IsActive: true}
	if err := conn.Create(&seller).Error; err != nil {
		t.Fatalf("seed seller: %v", err)
	}
	return seller
}

// SeedProduct inserts an approved, active product.
func SeedProduct(t *testing.T, conn *gorm.DB, sellerID uuid.UUID, name string, basePriceCents int64) models.Product {
	t.Helper()
	product := models.Product{
		SellerID:       sellerID,
		Name:           name,
		Status:         enums.ProductStatusApproved,
		IsActive:       true,
		BasePriceCents: basePriceCents,
	}
	if err := conn.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

// SeedVariant inserts an active variant.
func SeedVariant(t *testing.T, conn *gorm.DB, productID uuid.UUID, name string, priceCents int64, inventory int) models.ProductVariant {
	t.Helper()
	variant := models.ProductVariant{
		ProductID:  productID,
		Name:       name,
		PriceCents: priceCents,
		Inventory:  inventory,
		IsActive:   true,
	}
	if err := conn.Create(&variant).Error; err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	return variant
}

// Inventory reads the current stock of a variant.
func Inventory(t *testing.T, conn *gorm.DB, variantID uuid.UUID) int {
	t.Helper()
	var variant models.ProductVariant
	if err := conn.WithContext(context.Background()).First(&variant, "id = ?", variantID).Error; err != nil {
		t.Fatalf("load variant: %v", err)
	}
	return variant.Inventory
}

// Count returns the number of rows for model.
func Count(t *testing.T, conn *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := conn.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
