package cache

import (
	"time"
)

// DefaultPastTTL is how long responses for finished days stay cached.
const DefaultPastTTL = 14 * 24 * time.Hour

// TTLFor returns the cache TTL for a payload dated date. Data for a
// finished day no longer changes; today's keeps changing as the watch
// syncs. Returns 0 (do not cache) for today, future dates, and
// unparseable dates.
func TTLFor(date string, now time.Time, pastTTL time.Duration) time.Duration {
	if pastTTL <= 0 {
		return 0
	}

	day, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return 0
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !day.Before(today) {
		return 0
	}

	return pastTTL
}
