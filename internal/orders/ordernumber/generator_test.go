package ordernumber

import (
	"regexp"
	"testing"
	"time"
)

var numberRe = regexp.MustCompile(`^ORD-\d{8}-[0-9A-HJKMNP-TV-Z]{10}$`)

func TestRandomShape(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 5, 23, 30, 0, 0, time.UTC)
	seen := map[string]struct{}{}
	for i := 0; i < 500; i++ {
		n, err := Random{}.Next(now)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if !numberRe.MatchString(n) {
			t.Fatalf("unexpected order number %q", n)
		}
		if n[4:12] != "20260105" {
			t.Fatalf("expected date segment, got %q", n)
		}
		if _, dup := seen[n]; dup {
			t.Fatalf("duplicate order number %q", n)
		}
		seen[n] = struct{}{}
	}
}

func TestEncodeKeepsLowFiftyBits(t *testing.T) {
	t.Parallel()

	if got := encode([]byte{0, 0, 0, 0, 0, 0, 0}); got != "0000000000" {
		t.Fatalf("zero bytes: got %q", got)
	}
	if got := encode([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}); got != "ZZZZZZZZZZ" {
		t.Fatalf("all ones: got %q", got)
	}
	if got := encode([]byte{0, 0, 0, 0, 0, 0, 33}); got != "0000000011" {
		t.Fatalf("expected 33 to encode as 11, got %q", got)
	}
}

func TestFormatUsesUTCDate(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-5", -5*3600)
	local := time.Date(2026, 1, 5, 21, 0, 0, 0, loc)
	if got := Format(local, "ABCDEFGHJK"); got != "ORD-20260106-ABCDEFGHJK" {
		t.Fatalf("unexpected format %q", got)
	}
}
