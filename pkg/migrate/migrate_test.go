package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations should validate: %v", err)
	}
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad name.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatalf("expected invalid filename to fail")
	}

	empty := t.TempDir()
	if err := ValidateDir(empty); err == nil {
		t.Fatalf("expected empty dir to fail")
	}
}

func TestCreateSQLMigrationWritesTemplate(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Order Notes")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasSuffix(path, "_add_order_notes.sql") {
		t.Fatalf("unexpected path %q", path)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}
}

func TestCheckoutMigrationsContainConstraints(t *testing.T) {
	tests := []struct {
		glob   string
		checks []string
	}{
		{
			glob: "*_create_products.sql",
			checks: []string{
				"CREATE TABLE IF NOT EXISTS product_variants",
				"FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE",
				"CONSTRAINT chk_product_variants_inventory CHECK (inventory >= 0)",
				"DROP TABLE IF EXISTS product_variants",
			},
		},
		{
			glob: "*_create_orders.sql",
			checks: []string{
				"CREATE UNIQUE INDEX IF NOT EXISTS ux_orders_order_number ON orders (order_number)",
				"CHECK (total_cents = subtotal_cents + tax_cents + shipping_cents)",
				"CONSTRAINT chk_order_items_quantity CHECK (quantity > 0)",
				"shipping_address1 text NOT NULL",
				"billing_address1 text NOT NULL",
			},
		},
		{
			glob: "*_create_payments.sql",
			checks: []string{
				"CREATE UNIQUE INDEX IF NOT EXISTS ux_payments_order_id ON payments (order_id)",
				"CREATE UNIQUE INDEX IF NOT EXISTS ux_payments_idempotency_key ON payments (idempotency_key)",
			},
		},
	}

	for _, tt := range tests {
		matches, err := filepath.Glob(filepath.Join("migrations", tt.glob))
		if err != nil {
			t.Fatalf("glob migrations: %v", err)
		}
		if len(matches) != 1 {
			t.Fatalf("expected one migration for %s, got %d", tt.glob, len(matches))
		}
		data, err := os.ReadFile(matches[0])
		if err != nil {
			t.Fatalf("read migration file: %v", err)
		}
		content := string(data)
		for _, sub := range tt.checks {
			if !strings.Contains(content, sub) {
				t.Errorf("%s missing expected statement %q", matches[0], sub)
			}
		}
	}
}
