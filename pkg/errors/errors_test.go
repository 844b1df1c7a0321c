package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeProductUnavailable, status: http.StatusUnprocessableEntity, publicMsg: "product unavailable", detailsOK: true},
		{code: CodeVariantUnavailable, status: http.StatusUnprocessableEntity, publicMsg: "variant unavailable", detailsOK: true},
		{code: CodeInsufficientInventory, status: http.StatusConflict, publicMsg: "insufficient inventory", detailsOK: true},
		{code: CodePersistenceConflict, status: http.StatusConflict, publicMsg: "persistence conflict", retryable: true, detailsOK: true},
		{code: CodePartialCheckout, status: http.StatusMultiStatus, publicMsg: "checkout partially failed", detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "foo"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodePersistenceConflict, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodePersistenceConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsAndCodeOf(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeInsufficientInventory, "sold out"))
	if got := As(err); got == nil || got.Code() != CodeInsufficientInventory {
		t.Fatalf("As failed to return typed error")
	}
	if !IsCode(err, CodeInsufficientInventory) {
		t.Fatalf("IsCode should match wrapped code")
	}
	if CodeOf(stdErrors.New("plain")) != CodeInternal {
		t.Fatalf("plain errors should map to internal")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestDumpExtractsPostgresDetails(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "ux_orders_order_number", TableName: "orders"}
	dump := Dump(Wrap(CodePersistenceConflict, pgErr, "insert order"))
	if dump.Code != CodePersistenceConflict {
		t.Fatalf("expected code in dump, got %s", dump.Code)
	}
	if dump.PGCode != "23505" || dump.PGConstraint != "ux_orders_order_number" || dump.PGTable != "orders" {
		t.Fatalf("unexpected pg fields %+v", dump)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected two-link chain, got %v", dump.Chain)
	}

	pqDump := Dump(&pq.Error{Code: "23514", Constraint: "chk_product_variants_inventory"})
	if pqDump.PGCode != "23514" || pqDump.PGConstraint != "chk_product_variants_inventory" {
		t.Fatalf("unexpected pq fields %+v", pqDump)
	}

	if Dump(nil).TopMessage != "" {
		t.Fatalf("nil dump should be empty")
	}
}
