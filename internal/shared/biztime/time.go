// Package biztime keeps the business timezone used when presenting times.
// Storage and transport are UTC; the business zone only shapes exported and
// displayed timestamps and calendar dates.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is the default business timezone.
const DefaultTimezone = "America/Mexico_City"

var (
	bizLocation *time.Location
	mu          sync.RWMutex
)

// Init sets the business timezone. An empty tz selects DefaultTimezone.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", tz, err)
	}
	mu.Lock()
	bizLocation = loc
	mu.Unlock()
	return nil
}

// Location returns the business timezone, initializing the default on first use.
// UTC is used when the tz database is unavailable.
func Location() *time.Location {
	mu.RLock()
	loc := bizLocation
	mu.RUnlock()
	if loc != nil {
		return loc
	}
	if err := Init(""); err != nil {
		return time.UTC
	}
	return Location()
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Format renders t in the business timezone.
func Format(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.In(Location()).Format(layout)
}

// ParseDate parses a YYYY-MM-DD date as midnight in the business timezone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}
