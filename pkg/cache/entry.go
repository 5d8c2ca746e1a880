package cache

import (
	"time"
)

// Entry represents a cached Garmin Connect response.
type Entry struct {
	// Data is the raw response body
	Data []byte `json:"data"`

	// Date is the calendar date the payload belongs to (YYYY-MM-DD)
	Date string `json:"date"`

	// CachedAt is when we cached this response
	CachedAt time.Time `json:"cached_at"`

	// Expires is when the cache entry becomes stale
	Expires time.Time `json:"expires"`
}

// IsExpired returns true if the cache entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}
