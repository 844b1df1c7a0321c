// Package ordernumber issues human-readable order numbers.
package ordernumber

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	prefix   = "ORD"
	alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
	// 10 base32 characters carry 50 random bits.
	suffixLen = 10
)

// Generator returns a candidate order number. Uniqueness is enforced by the
// store; callers regenerate on collision.
type Generator interface {
	Next(now time.Time) (string, error)
}

// Random builds numbers shaped ORD-YYYYMMDD-XXXXXXXXXX.
type Random struct{}

func (Random) Next(now time.Time) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate order number entropy: %w", err)
	}
	return Format(now, encode(id[:])), nil
}

// Format joins the date and suffix into an order number.
func Format(now time.Time, suffix string) string {
	return fmt.Sprintf("%s-%s-%s", prefix, now.UTC().Format("20060102"), suffix)
}

func encode(b []byte) string {
	var bits uint64
	for i := 0; i < 7; i++ {
		bits = bits<<8 | uint64(b[i])
	}
	// 56 bits read, keep the low 50.
	bits &= (1 << (5 * suffixLen)) - 1

	out := make([]byte, suffixLen)
	for i := suffixLen - 1; i >= 0; i-- {
		out[i] = alphabet[bits&31]
		bits >>= 5
	}
	return string(out)
}
