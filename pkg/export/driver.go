// Package export drives a complete Garmin Connect data export: every
// category is fetched in a fixed sequence and folded into one
// AggregateRecord. A run cannot fail; categories that never answer end
// up empty and the record always has its full shape.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"garminexport/pkg/connect"
	"garminexport/pkg/fetch"
)

// Prometheus metrics for export runs.
var (
	exportRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "garmin_export_runs_total",
		Help: "Total number of export runs",
	})

	exportDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "garmin_export_duration_seconds",
		Help:    "Duration of complete export runs in seconds",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	})

	exportCategoriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garmin_export_categories_fetched_total",
		Help: "Total number of category fetches started by export runs",
	}, []string{"category"})
)

// Page sizes for the list endpoints. Garmin pages these; one page of
// recent entries is what the export keeps.
const (
	activityPageSize = 50
	workoutPageSize  = 50
)

// Config holds the configuration for an exporter.
type Config struct {
	// History configures the per-day worker pool.
	History fetch.HistoryConfig

	// Call is the resilience configuration for single-shot calls.
	Call fetch.CallConfig

	// Now supplies the export clock. Defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns the default exporter configuration.
func DefaultConfig() Config {
	return Config{
		History: fetch.DefaultHistoryConfig(),
		Call:    fetch.DefaultCallConfig(),
	}
}

// Exporter aggregates all Garmin Connect categories into one record.
type Exporter struct {
	client  *connect.Client
	history *fetch.HistoryFetcher
	callCfg fetch.CallConfig
	logger  zerolog.Logger
	now     func() time.Time
}

// New creates an exporter.
func New(client *connect.Client, cfg Config) (*Exporter, error) {
	if client == nil {
		return nil, fmt.Errorf("connect client is required")
	}

	history, err := fetch.NewHistoryFetcher(cfg.History)
	if err != nil {
		return nil, fmt.Errorf("history fetcher: %w", err)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Exporter{
		client:  client,
		history: history,
		callCfg: cfg.Call,
		logger:  log.With().Str("component", "exporter").Logger(),
		now:     now,
	}, nil
}

// Run fetches every category and returns the aggregate record. days is
// how many days of history to cover in addition to today; negative
// values are treated as 0. Run never fails: individual categories that
// exhaust their attempts stay empty in the record.
func (e *Exporter) Run(ctx context.Context, days int) *AggregateRecord {
	start := time.Now()
	exportRunsTotal.Inc()

	now := e.now()
	dates := DateRange(now, days)
	today := dates[0]
	oldest := dates[len(dates)-1]

	rec := &AggregateRecord{
		FetchedAt: now.Format(time.RFC3339),
		DateRange: DateRangeInfo{
			Start: oldest,
			End:   today,
			Days:  len(dates),
		},
	}

	e.logger.Info().
		Str("start", oldest).
		Str("end", today).
		Int("days", len(dates)).
		Msg("Starting export")

	e.fetchAccount(ctx, rec)
	e.fetchHistories(ctx, rec, dates)
	e.fetchBody(ctx, rec, oldest, today)
	e.fetchTraining(ctx, rec, today)
	e.fetchCollections(ctx, rec)

	exportDurationSeconds.Observe(time.Since(start).Seconds())
	e.logger.Info().
		Dur("duration", time.Since(start)).
		Msg("Export complete")

	return rec
}

// callPayload runs a single-shot map endpoint through the call wrapper.
// The result is never nil so it renders as {} in JSON.
func (e *Exporter) callPayload(ctx context.Context, name string, op func(context.Context) (connect.Payload, error)) connect.Payload {
	exportCategoriesTotal.WithLabelValues(name).Inc()

	result := fetch.Call(ctx, name, op, nil, e.callCfg)
	if result == nil {
		result = connect.Payload{}
	}
	return result
}

// callList runs a single-shot list endpoint through the call wrapper.
// The result is never nil so it renders as [] in JSON.
func (e *Exporter) callList(ctx context.Context, name string, op func(context.Context) ([]connect.Payload, error)) []connect.Payload {
	exportCategoriesTotal.WithLabelValues(name).Inc()

	result := fetch.Call(ctx, name, op, nil, e.callCfg)
	if result == nil {
		result = []connect.Payload{}
	}
	return result
}

// fetchDays runs a per-day category through the history fetcher.
func (e *Exporter) fetchDays(ctx context.Context, name string, dates []string, fn fetch.DayFunc) []connect.Payload {
	exportCategoriesTotal.WithLabelValues(name).Inc()
	return e.history.FetchDays(ctx, name, dates, fn)
}

func (e *Exporter) fetchAccount(ctx context.Context, rec *AggregateRecord) {
	rec.UserProfile = e.callPayload(ctx, "user_profile", e.client.SocialProfile)
	rec.PersonalInfo = e.callPayload(ctx, "personal_info", e.client.PersonalInformation)
	rec.UserSettings = e.callPayload(ctx, "user_settings", e.client.UserSettings)
	rec.UnitSystem = unitSystem(rec.UserSettings)
	rec.Devices = e.callList(ctx, "devices", e.client.Devices)
	rec.DeviceLastUsed = e.callPayload(ctx, "device_last_used", e.client.DeviceLastUsed)
}

func (e *Exporter) fetchHistories(ctx context.Context, rec *AggregateRecord, dates []string) {
	rec.DailyStats = e.fetchDays(ctx, "daily_stats", dates, e.client.DailySummary)
	rec.SleepHistory = e.fetchDays(ctx, "sleep", dates, e.sleepDay)
	rec.HeartRateHistory = e.fetchDays(ctx, "heart_rate", dates, e.client.HeartRates)
	rec.HRVHistory = e.fetchDays(ctx, "hrv", dates, e.client.HRVData)
	rec.StressHistory = e.fetchDays(ctx, "stress", dates, e.client.StressData)
	rec.BodyBatteryHistory = e.fetchDays(ctx, "body_battery", dates, wrapDayList(e.client.BodyBatteryEvents))
	rec.RespirationHistory = e.fetchDays(ctx, "respiration", dates, e.client.Respiration)
	rec.SpO2History = e.fetchDays(ctx, "spo2", dates, e.client.SpO2)
	rec.StepsHistory = e.fetchDays(ctx, "steps", dates, wrapDayList(e.client.DailySteps))
	rec.FloorsHistory = e.fetchDays(ctx, "floors", dates, wrapDayList(e.client.DailyFloors))
	rec.IntensityMinutesHistory = e.fetchDays(ctx, "intensity_minutes", dates, e.client.IntensityMinutes)
	rec.HydrationHistory = e.fetchDays(ctx, "hydration", dates, e.client.Hydration)
}

func (e *Exporter) fetchBody(ctx context.Context, rec *AggregateRecord, oldest, today string) {
	rec.WeightHistory = e.callPayload(ctx, "weight_history", func(ctx context.Context) (connect.Payload, error) {
		return e.client.WeighIns(ctx, oldest, today)
	})
	rec.BodyComposition = e.callPayload(ctx, "body_composition", func(ctx context.Context) (connect.Payload, error) {
		return e.client.BodyComposition(ctx, today)
	})
	rec.BloodPressure = e.callPayload(ctx, "blood_pressure", func(ctx context.Context) (connect.Payload, error) {
		return e.client.BloodPressure(ctx, oldest, today)
	})
}

func (e *Exporter) fetchTraining(ctx context.Context, rec *AggregateRecord, today string) {
	rec.Activities = e.callList(ctx, "activities", func(ctx context.Context) ([]connect.Payload, error) {
		return e.client.Activities(ctx, 0, activityPageSize)
	})
	rec.ActivityTypes = e.callList(ctx, "activity_types", e.client.ActivityTypes)
	rec.TrainingStatus = e.callPayload(ctx, "training_status", func(ctx context.Context) (connect.Payload, error) {
		return e.client.TrainingStatus(ctx, today)
	})
	rec.TrainingReadiness = e.callList(ctx, "training_readiness", func(ctx context.Context) ([]connect.Payload, error) {
		return e.client.TrainingReadiness(ctx, today)
	})
	rec.MaxMetrics = e.callList(ctx, "max_metrics", func(ctx context.Context) ([]connect.Payload, error) {
		return e.client.MaxMetrics(ctx, today)
	})
	rec.FitnessAge = e.callPayload(ctx, "fitness_age", func(ctx context.Context) (connect.Payload, error) {
		return e.client.FitnessAge(ctx, today)
	})
	rec.EnduranceScore = e.callPayload(ctx, "endurance_score", func(ctx context.Context) (connect.Payload, error) {
		return e.client.EnduranceScore(ctx, today)
	})
	rec.HillScore = e.callPayload(ctx, "hill_score", func(ctx context.Context) (connect.Payload, error) {
		return e.client.HillScore(ctx, today)
	})
	rec.RacePredictions = e.callPayload(ctx, "race_predictions", e.client.RacePredictions)
	rec.LactateThreshold = e.callPayload(ctx, "lactate_threshold", e.client.LactateThreshold)
	rec.PersonalRecords = e.callList(ctx, "personal_records", e.client.PersonalRecords)
}

func (e *Exporter) fetchCollections(ctx context.Context, rec *AggregateRecord) {
	rec.Goals = e.callList(ctx, "goals", func(ctx context.Context) ([]connect.Payload, error) {
		return e.client.Goals(ctx, "active")
	})
	rec.EarnedBadges = e.callList(ctx, "earned_badges", e.client.EarnedBadges)
	rec.BadgeChallenges = e.callList(ctx, "badge_challenges", e.client.AvailableBadgeChallenges)
	rec.Gear = e.callList(ctx, "gear", e.client.Gear)
	rec.Workouts = e.callList(ctx, "workouts", func(ctx context.Context) ([]connect.Payload, error) {
		return e.client.Workouts(ctx, 0, workoutPageSize)
	})
}

// sleepDay fetches and normalizes one night of sleep.
func (e *Exporter) sleepDay(ctx context.Context, date string) (connect.Payload, error) {
	raw, err := e.client.SleepData(ctx, date)
	if err != nil {
		return nil, err
	}
	return normalizeSleep(raw), nil
}

// normalizeSleep flattens the sleep response: the summary fields from
// dailySleepDTO plus the stage series under "sleep_levels". A night
// without sleep data still answers with a DTO shell whose id is null;
// those normalize to nil and get dropped.
func normalizeSleep(raw connect.Payload) connect.Payload {
	dto, ok := raw["dailySleepDTO"].(map[string]any)
	if !ok || dto["id"] == nil {
		return nil
	}

	out := make(connect.Payload, len(dto)+1)
	for k, v := range dto {
		out[k] = v
	}

	if levels, ok := raw["sleepLevels"].([]any); ok {
		out["sleep_levels"] = levels
	} else {
		out["sleep_levels"] = []any{}
	}

	return out
}

// wrapDayList adapts a list-shaped day endpoint to a DayFunc. The list
// is kept under a "data" key so the date tag has a map to live on.
func wrapDayList(fn func(context.Context, string) ([]connect.Payload, error)) fetch.DayFunc {
	return func(ctx context.Context, date string) (connect.Payload, error) {
		list, err := fn(ctx, date)
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, nil
		}
		return connect.Payload{"data": list}, nil
	}
}

// unitSystem pulls the measurement system out of the settings payload.
func unitSystem(settings connect.Payload) string {
	userData, ok := settings["userData"].(map[string]any)
	if !ok {
		return ""
	}
	system, _ := userData["measurementSystem"].(string)
	return system
}
