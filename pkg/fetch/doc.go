// Package fetch provides resilient calls and parallel per-day history
// fetching against Garmin Connect.
//
// Garmin's consumer endpoints fail sporadically (transient 5xx, the
// occasional connection reset), and a personal export should survive
// that without babysitting. The package offers two layers:
//
// Call wraps a single operation with a fixed number of attempts and a
// fixed pause between them. It never returns an error; when all
// attempts fail the caller gets its fallback value and the failure goes
// to logs and metrics.
//
//	summary := fetch.Call(ctx, "daily_summary", func(ctx context.Context) (connect.Payload, error) {
//		return client.DailySummary(ctx, date)
//	}, nil, fetch.DefaultCallConfig())
//
// HistoryFetcher spreads one fetch per calendar date across a bounded
// worker pool:
//
//	fetcher, err := fetch.NewHistoryFetcher(fetch.DefaultHistoryConfig())
//	days := fetcher.FetchDays(ctx, "sleep", dates, client.SleepData)
//
// The history fetcher:
//   - Queues all dates up front and lets workers drain the queue
//   - Pauses each worker a fixed delay before every request
//   - Tags each payload with its date and sorts the batch newest first
//   - Drops failed or empty days instead of failing the batch
package fetch
