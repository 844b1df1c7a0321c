package types

import "testing"

func TestAddressNormalized(t *testing.T) {
	t.Parallel()

	blank := "   "
	phone := " 555-0100 "
	addr := Address{
		FirstName: " Ada ",
		LastName:  "Lovelace",
		Address1:  "1 Main St ",
		Address2:  &blank,
		City:      "London",
		State:     "LDN",
		Zip:       " 1000 ",
		Country:   "UK",
		Phone:     &phone,
	}.Normalized()

	if addr.FirstName != "Ada" || addr.Address1 != "1 Main St" || addr.Zip != "1000" {
		t.Fatalf("expected trimmed fields, got %+v", addr)
	}
	if addr.Address2 != nil {
		t.Fatalf("blank address2 should be cleared")
	}
	if addr.Phone == nil || *addr.Phone != "555-0100" {
		t.Fatalf("expected trimmed phone, got %v", addr.Phone)
	}
}

func TestAddressMissingFields(t *testing.T) {
	t.Parallel()

	missing := Address{FirstName: "Ada", City: " "}.MissingFields()
	want := []string{"lastName", "address1", "city", "state", "zip", "country"}
	if len(missing) != len(want) {
		t.Fatalf("expected %v, got %v", want, missing)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, missing)
		}
	}
}
