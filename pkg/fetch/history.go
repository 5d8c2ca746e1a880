package fetch

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"garminexport/pkg/connect"
	"garminexport/pkg/ratelimit"
)

// Prometheus metrics for history fetching.
var (
	historyDaysFetchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garmin_history_days_fetched_total",
		Help: "Total number of per-day payloads fetched by category",
	}, []string{"category"})

	historyDaysDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garmin_history_days_dropped_total",
		Help: "Total number of per-day fetches dropped (failed or empty) by category",
	}, []string{"category"})
)

// DayFunc fetches the payload for a single calendar date (YYYY-MM-DD).
type DayFunc func(ctx context.Context, date string) (connect.Payload, error)

// HistoryConfig holds the configuration for parallel history fetching.
type HistoryConfig struct {
	// Workers is the number of parallel fetch workers.
	Workers int

	// RequestDelay is the fixed pause each worker takes before a request.
	RequestDelay time.Duration

	// Call is the resilience configuration applied to each day fetch.
	Call CallConfig
}

// DefaultHistoryConfig returns the default history fetch configuration.
func DefaultHistoryConfig() HistoryConfig {
	return HistoryConfig{
		Workers:      4,
		RequestDelay: 500 * time.Millisecond,
		Call:         DefaultCallConfig(),
	}
}

// HistoryFetcher fetches one payload per calendar date across a bounded
// worker pool.
type HistoryFetcher struct {
	config HistoryConfig
	pacer  *ratelimit.Pacer
}

// NewHistoryFetcher creates a history fetcher.
func NewHistoryFetcher(config HistoryConfig) (*HistoryFetcher, error) {
	if config.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", config.Workers)
	}
	if config.RequestDelay < 0 {
		return nil, fmt.Errorf("request delay must not be negative, got %v", config.RequestDelay)
	}

	return &HistoryFetcher{
		config: config,
		pacer:  ratelimit.NewPacer(config.RequestDelay),
	}, nil
}

// FetchDays runs fn for every date and returns the successful payloads
// sorted newest first, each tagged with its date under the "date" key.
// Days that fail or come back empty are dropped. The batch itself never
// fails and the returned slice is never nil.
func (f *HistoryFetcher) FetchDays(ctx context.Context, category string, dates []string, fn DayFunc) []connect.Payload {
	start := time.Now()

	results := make([]connect.Payload, 0, len(dates))
	if len(dates) == 0 {
		return results
	}

	// Buffered to the full batch so neither filling nor sending blocks.
	taskQueue := make(chan string, len(dates))
	dayResults := make(chan connect.Payload, len(dates))

	for _, date := range dates {
		taskQueue <- date
	}
	close(taskQueue)

	workers := f.config.Workers
	if workers > len(dates) {
		workers = len(dates)
	}

	log.Debug().
		Str("category", category).
		Int("days", len(dates)).
		Int("workers", workers).
		Msg("Starting history fetch")

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go f.worker(ctx, category, fn, taskQueue, dayResults, &wg, i)
	}

	// Close the results channel once all workers have drained the queue.
	go func() {
		wg.Wait()
		close(dayResults)
	}()

	for payload := range dayResults {
		results = append(results, payload)
	}

	// ISO dates order lexicographically; newest first.
	sort.Slice(results, func(i, j int) bool {
		di, _ := results[i]["date"].(string)
		dj, _ := results[j]["date"].(string)
		return di > dj
	})

	log.Info().
		Str("category", category).
		Int("requested", len(dates)).
		Int("fetched", len(results)).
		Int("dropped", len(dates)-len(results)).
		Dur("duration", time.Since(start)).
		Msg("History fetch complete")

	return results
}

// worker drains the task queue, pacing before each fetch.
func (f *HistoryFetcher) worker(ctx context.Context, category string, fn DayFunc, taskQueue <-chan string, results chan<- connect.Payload, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()
	fetched := 0

	for date := range taskQueue {
		// The pause comes before every request, including failing ones.
		f.pacer.Wait()

		payload := Call(ctx, category, func(ctx context.Context) (connect.Payload, error) {
			return fn(ctx, date)
		}, nil, f.config.Call)

		if len(payload) == 0 {
			historyDaysDroppedTotal.WithLabelValues(category).Inc()
			log.Debug().
				Str("category", category).
				Str("date", date).
				Int("worker_id", workerID).
				Msg("Day dropped, no data")
			continue
		}

		payload["date"] = date
		historyDaysFetchedTotal.WithLabelValues(category).Inc()
		results <- payload
		fetched++
	}

	if fetched > 0 {
		log.Debug().
			Str("category", category).
			Int("worker_id", workerID).
			Int("days_fetched", fetched).
			Msg("Worker completed")
	}
}
