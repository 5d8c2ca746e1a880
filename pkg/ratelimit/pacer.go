// Package ratelimit paces outbound Garmin Connect requests.
//
// Garmin publishes no request quota for the consumer API, so pacing is
// deliberately blunt: a fixed sleep before every request a worker makes.
// With N workers the sustained rate stays near N requests per delay
// window. Bursts after idle periods are not smoothed out; the sleep
// happens per request, not per interval.
package ratelimit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for request pacing.
var (
	pacerWaitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "garmin_pacer_waits_total",
		Help: "Total number of paced sleeps before outbound requests",
	})

	pacerWaitSecondsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "garmin_pacer_wait_seconds_total",
		Help: "Total time spent sleeping in the pacer, in seconds",
	})
)

// Pacer sleeps for a fixed duration before each request.
type Pacer struct {
	delay time.Duration
}

// NewPacer creates a pacer with the given per-request delay.
// Negative delays are treated as zero.
func NewPacer(delay time.Duration) *Pacer {
	if delay < 0 {
		delay = 0
	}
	return &Pacer{delay: delay}
}

// Delay returns the configured per-request delay.
func (p *Pacer) Delay() time.Duration {
	return p.delay
}

// Wait sleeps for the configured delay. A zero-delay pacer returns
// immediately without touching metrics.
func (p *Pacer) Wait() {
	if p.delay <= 0 {
		return
	}

	pacerWaitsTotal.Inc()
	pacerWaitSecondsTotal.Add(p.delay.Seconds())
	time.Sleep(p.delay)
}
