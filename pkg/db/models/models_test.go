package models

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/marketplace-checkout/pkg/enums"
	"github.com/angelmondragon/marketplace-checkout/pkg/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:models_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCreateAssignsIDs(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	seller := Seller{BusinessName: "Acme"}
	if err := db.Create(&seller).Error; err != nil {
		t.Fatalf("create seller: %v", err)
	}
	if seller.ID == uuid.Nil {
		t.Fatalf("expected generated seller id")
	}

	preset := uuid.New()
	product := Product{ID: preset, SellerID: seller.ID, Name: "Mug", Status: enums.ProductStatusApproved, IsActive: true, BasePriceCents: 500}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	if product.ID != preset {
		t.Fatalf("preset id should be kept")
	}
}

func TestVariantInventoryCannotGoNegative(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	variant := ProductVariant{ProductID: uuid.New(), Name: "Blue", PriceCents: 100, Inventory: 1, IsActive: true}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant: %v", err)
	}
	err := db.Model(&ProductVariant{}).Where("id = ?", variant.ID).Update("inventory", gorm.Expr("inventory - ?", 2)).Error
	if err == nil {
		t.Fatalf("expected check constraint to reject negative inventory")
	}
}

func TestOrderAddressSnapshotColumns(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	phone := "555-0100"
	order := Order{
		OrderNumber:     "ORD-TEST-1",
		CustomerID:      uuid.New(),
		SellerID:        uuid.New(),
		Status:          enums.OrderStatusCreated,
		PaymentStatus:   enums.PaymentStatusInitiated,
		SubtotalCents:   1000,
		TaxCents:        100,
		ShippingCents:   1000,
		TotalCents:      2100,
		ShippingAddress: types.Address{FirstName: "Ada", LastName: "L", Address1: "1 Main", City: "X", State: "Y", Zip: "1", Country: "US", Phone: &phone},
		BillingAddress:  types.Address{FirstName: "Bob", LastName: "B", Address1: "2 Side", City: "X", State: "Y", Zip: "2", Country: "US"},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}

	var row struct {
		ShippingFirstName string
		ShippingPhone     *string
		BillingFirstName  string
		BillingPhone      *string
	}
	if err := db.Table("orders").Select("shipping_first_name, shipping_phone, billing_first_name, billing_phone").Where("id = ?", order.ID).Scan(&row).Error; err != nil {
		t.Fatalf("scan snapshot: %v", err)
	}
	if row.ShippingFirstName != "Ada" || row.BillingFirstName != "Bob" {
		t.Fatalf("unexpected snapshot columns %+v", row)
	}
	if row.ShippingPhone == nil || *row.ShippingPhone != phone || row.BillingPhone != nil {
		t.Fatalf("unexpected phone columns %+v", row)
	}

	bad := order
	bad.ID = uuid.Nil
	bad.OrderNumber = "ORD-TEST-2"
	bad.TotalCents = 1
	if err := db.Create(&bad).Error; err == nil {
		t.Fatalf("expected total check constraint to fail")
	}
}

func TestIsPurchasable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		product *Product
		want    bool
	}{
		{&Product{Status: enums.ProductStatusApproved, IsActive: true}, true},
		{&Product{Status: enums.ProductStatusPending, IsActive: true}, false},
		{&Product{Status: enums.ProductStatusApproved, IsActive: false}, false},
		{nil, false},
	}
	for i, tc := range cases {
		if got := tc.product.IsPurchasable(); got != tc.want {
			t.Fatalf("case %d: expected %v got %v", i, tc.want, got)
		}
	}
}
