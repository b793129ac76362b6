// Package repository implements per-resource stores over database/sql.
// All queries that touch user-owned resources are scoped by user_id, so a
// row owned by another user is indistinguishable from a missing row.
package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"finledger/internal/domain"
)

const dateLayout = "2006-01-02"

// mapDBError translates driver-level errors into domain errors.
func mapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound("resource not found")
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return domain.ErrConflict("resource already exists")
	}
	return err
}

// parseDate parses a stored YYYY-MM-DD date column.
func parseDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

// formatDate renders a date for storage, dropping any time component.
func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}
