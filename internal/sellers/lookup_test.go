package sellers

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/marketplace-checkout/internal/testutil"
	pkgerrors "github.com/angelmondragon/marketplace-checkout/pkg/errors"
)

func TestFindSeller(t *testing.T) {
	t.Parallel()

	conn := testutil.NewDB(t)
	seeded := testutil.SeedSeller(t, conn, "Acme")
	lookup := NewRepository(conn)

	got, err := lookup.FindSeller(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("find seller: %v", err)
	}
	if got.BusinessName != "Acme" || !got.IsActive {
		t.Fatalf("unexpected seller %+v", got)
	}

	if _, err := lookup.FindSeller(context.Background(), uuid.New()); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
