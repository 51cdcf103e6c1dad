package storage

import (
	"fmt"
	"time"
)

// TimeFormat is the canonical timestamp layout stored in TEXT columns.
const TimeFormat = "2006-01-02T15:04:05.999999999Z07:00"

// FormatTime renders a time for storage; zero times become the empty string.
// PRE: none
// POST: Returns RFC3339Nano text or ""
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeFormat)
}

// ParseTime parses a stored timestamp, accepting the formats written by
// current and earlier versions of the schema.
// PRE: none
// POST: Returns the parsed time or an error
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04", // html datetime-local inputs
		"2006-01-02",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}
