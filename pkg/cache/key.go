package cache

import (
	"strings"
)

// Key represents a unique identifier for a cached per-day response.
type Key struct {
	// Endpoint is the short endpoint name (e.g. "sleep", "daily_stats")
	Endpoint string

	// Date is the calendar date of the payload (YYYY-MM-DD)
	Date string
}

// String generates a deterministic cache key string.
// Format: garmin:endpoint:date
//
// Example:
//
//	garmin:sleep:2026-08-20
func (k Key) String() string {
	parts := []string{"garmin"}

	if endpoint := strings.Trim(k.Endpoint, ":"); endpoint != "" {
		parts = append(parts, endpoint)
	}
	if k.Date != "" {
		parts = append(parts, k.Date)
	}

	return strings.Join(parts, ":")
}
