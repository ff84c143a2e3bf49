package repository

import (
	"database/sql"
	"time"
)

const timestampLayout = time.RFC3339

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(timestampLayout)
}

// parseTimestamp parses a stored RFC3339 value, returning the zero time
// for NULL or malformed values.
func parseTimestamp(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(timestampLayout, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
