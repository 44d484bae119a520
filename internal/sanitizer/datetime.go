package sanitizer

import (
	"regexp"
	"strings"
	"time"
)

// DefaultTime is returned by Time for anything that is not a valid HH:MM.
const DefaultTime = "09:00"

var timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// dateLayouts are tried in order when a date arrives as a string.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Time validates a 24-hour HH:MM value.
func Time(input string) string {
	s := strings.TrimSpace(input)
	if timeRe.MatchString(s) {
		return s
	}
	return DefaultTime
}

// Date accepts a time.Time, a *time.Time or a parseable string and falls
// back to now for anything else, including the zero time.
// Strings without a zone are read in now's location.
func Date(input any, now time.Time) time.Time {
	switch v := input.(type) {
	case time.Time:
		if !v.IsZero() {
			return v
		}
	case *time.Time:
		if v != nil && !v.IsZero() {
			return *v
		}
	case string:
		if t, ok := parseDate(strings.TrimSpace(v), now.Location()); ok {
			return t
		}
	}
	return now
}

func parseDate(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
