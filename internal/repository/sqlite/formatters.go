package sqlite

import (
	"time"
)

// FormatTimeForDB renders a timestamp as RFC3339 in UTC.
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTimeFromDB parses a column written by FormatTimeForDB.
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// NullableString returns nil for a nil pointer so the column is stored as NULL.
func NullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
