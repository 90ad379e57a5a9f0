package repository

import (
	"time"
)

// parseTime parses an RFC3339 column value. Returns the zero time on failure.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// formatTime renders t as UTC RFC3339 for SQLite storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return formatTime(time.Now())
}
