// Package cache provides per-day response caching with a Redis backend.
//
// Garmin wellness data for a finished day never changes, so responses
// for past dates are cached and today is always fetched live. The cache
// stores raw response bodies keyed by endpoint name and calendar date.
//
// # Basic Usage
//
//	// Create Redis client
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	// Create cache manager
//	manager := cache.NewManager(redisClient)
//
//	// Create cache key
//	key := cache.Key{Endpoint: "sleep", Date: "2026-08-20"}
//
//	// Get from cache
//	entry, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// Cache miss - fetch from Garmin
//	}
//
// # TTL Policy
//
// TTLFor decides whether a payload is cacheable at all:
//
//	if ttl := cache.TTLFor(date, time.Now(), cache.DefaultPastTTL); ttl > 0 {
//		entry := &cache.Entry{
//			Data:     body,
//			Date:     date,
//			CachedAt: time.Now(),
//			Expires:  time.Now().Add(ttl),
//		}
//		manager.Set(ctx, key, entry)
//	}
//
// Today, future dates, and unparseable dates are never cached.
//
// # Metrics
//
// The cache manager exports Prometheus metrics:
//
//   - garmin_cache_hits_total - Cache hits
//   - garmin_cache_misses_total - Cache misses
//   - garmin_cache_errors_total{operation} - Cache operation errors
package cache
