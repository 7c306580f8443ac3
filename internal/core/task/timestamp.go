package task

import "time"

// TimeLayout is the layout used when stamping tasks. It matches the
// millisecond precision UTC form produced by JavaScript's toISOString.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// parseLayouts are tried in order. Layouts without a zone are read as UTC.
var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FormatTime formats t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses an ISO-8601 timestamp.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrParse
}

// parseField parses a timestamp field of t, returning a *ParseError on failure.
func parseField(t Task, field, value string) (time.Time, error) {
	ts, err := ParseTime(value)
	if err != nil {
		return time.Time{}, &ParseError{UUID: t.UUID, Field: field, Value: value}
	}
	return ts, nil
}
