package db

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestIsUniqueViolationPostgresErrors(t *testing.T) {
	t.Parallel()

	pgxErr := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "ux_orders_order_number"})
	if !IsUniqueViolation(pgxErr, "ux_orders_order_number") {
		t.Fatalf("expected pgx unique violation to match constraint")
	}
	if IsUniqueViolation(pgxErr, "ux_payments_idempotency_key") {
		t.Fatalf("different constraint must not match")
	}

	pqErr := &pq.Error{Code: "23505", Constraint: "ux_payments_idempotency_key"}
	if !IsUniqueViolation(pqErr, "ux_payments_idempotency_key") {
		t.Fatalf("expected pq unique violation to match")
	}

	fkErr := &pgconn.PgError{Code: "23503", ConstraintName: "ux_orders_order_number"}
	if IsUniqueViolation(fkErr, "") {
		t.Fatalf("foreign key violation must not be reported as unique")
	}
	if !IsCheckViolation(&pgconn.PgError{Code: "23514", ConstraintName: "chk_product_variants_inventory"}, "chk_product_variants_inventory") {
		t.Fatalf("expected check violation")
	}
}
