package timehelper

import (
	"log"
	"time"
)

const DefaultTimezone = "Asia/Karachi"

// LoadLocation resolves the timezone every date in the system is pinned to.
// Falls back to UTC when the name cannot be resolved.
func LoadLocation(name string) *time.Location {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Failed to load timezone %q, falling back to UTC: %v\n", name, err)
		return time.UTC
	}
	return loc
}

// DateString formats a point in time as 'YYYY-MM-DD' in the given timezone.
// Snapshot documents are keyed by this string.
func DateString(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// DisplayDate formats a point in time the way the digest header shows it.
func DisplayDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Monday, 2 January 2006")
}

// DayStart parses a 'YYYY-MM-DD' string into midnight of that day in the
// given timezone.
func DayStart(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, loc)
}
