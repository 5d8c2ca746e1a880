package fetch

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"garminexport/pkg/connect"
)

// Prometheus metrics for wrapped call outcomes.
var (
	callFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garmin_call_failures_total",
		Help: "Total number of failed call attempts by call name and error class",
	}, []string{"call", "class"})

	callDefaultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garmin_call_defaults_total",
		Help: "Total number of calls that exhausted all attempts and returned the default",
	}, []string{"call"})
)

// CallConfig holds the configuration for resilient calls.
type CallConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// AttemptDelay is the fixed pause between attempts.
	AttemptDelay time.Duration
}

// DefaultCallConfig returns the default call configuration.
func DefaultCallConfig() CallConfig {
	return CallConfig{
		MaxAttempts:  3,
		AttemptDelay: 2 * time.Second,
	}
}

// Call runs op up to cfg.MaxAttempts times and returns the first
// successful result. When every attempt fails it returns fallback; the
// error never reaches the caller. Failures surface in logs and metrics
// only.
func Call[T any](ctx context.Context, name string, op func(context.Context) (T, error), fallback T, cfg CallConfig) T {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastClass connect.ErrorClass
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			if attempt > 1 {
				log.Info().
					Str("call", name).
					Int("attempt", attempt).
					Msg("Call succeeded after retry")
			}
			return result
		}

		class := connect.Classify(err)
		lastClass = class
		callFailuresTotal.WithLabelValues(name, string(class)).Inc()

		log.Warn().
			Err(err).
			Str("call", name).
			Str("error_class", string(class)).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Msg("Call attempt failed")

		if attempt >= attempts {
			break
		}

		// Keep attempting; calls fail fast once the context is gone.
		select {
		case <-ctx.Done():
		case <-time.After(cfg.AttemptDelay):
		}
	}

	callDefaultsTotal.WithLabelValues(name).Inc()
	log.Warn().
		Str("call", name).
		Str("error_class", string(lastClass)).
		Int("max_attempts", attempts).
		Msg("Call attempts exhausted, returning default")

	return fallback
}
