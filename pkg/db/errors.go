package db

import (
	"strings"

	pkgerrors "github.com/angelmondragon/marketplace-checkout/pkg/errors"
)

const (
	sqlStateUniqueViolation = "23505"
	sqlStateCheckViolation  = "23514"
)

// IsUniqueViolation reports whether err is a unique constraint violation.
// When constraintName is provided the violated constraint must match it. For
// drivers without structured errors (sqlite) the name is matched against the
// message, so callers may pass "table.column" as well.
func IsUniqueViolation(err error, constraintName string) bool {
	return matchesViolation(err, sqlStateUniqueViolation, constraintName, "duplicate key value", "UNIQUE constraint failed")
}

// IsCheckViolation reports whether err is a CHECK constraint violation.
func IsCheckViolation(err error, constraintName string) bool {
	return matchesViolation(err, sqlStateCheckViolation, constraintName, "violates check constraint", "CHECK constraint failed")
}

func matchesViolation(err error, sqlState, constraintName string, markers ...string) bool {
	if err == nil {
		return false
	}
	if dump := pkgerrors.Dump(err); dump.HasPG() {
		if dump.PGCode != sqlState {
			return false
		}
		return constraintName == "" || dump.PGConstraint == constraintName
	}

	msg := err.Error()
	matched := false
	for _, marker := range markers {
		if strings.Contains(msg, marker) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	return constraintName == "" || strings.Contains(msg, constraintName)
}
