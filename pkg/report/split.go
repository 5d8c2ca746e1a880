package report

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"garminexport/pkg/connect"
	"garminexport/pkg/export"
)

// CategoriesDir is the directory name for per-category files, relative
// to the writer's data directory.
const CategoriesDir = "categories"

// categoryEnvelope wraps one category's data with enough metadata to
// read the file on its own.
type categoryEnvelope struct {
	Metadata categoryMetadata `json:"metadata"`
	Data     any              `json:"data"`
}

type categoryMetadata struct {
	ExportID  string               `json:"export_id"`
	FetchedAt string               `json:"fetched_at"`
	DateRange export.DateRangeInfo `json:"date_range"`
	Category  string               `json:"category"`
	Count     int                  `json:"count"`
}

type category struct {
	name  string
	data  any
	count int
}

// WriteCategoryFiles writes one JSON file per category under the
// categories directory and returns the artifact paths. Empty
// categories are written too, so a reader can tell "no data" from "not
// exported".
func (w *Writer) WriteCategoryFiles(rec *export.AggregateRecord) ([]string, error) {
	dir := filepath.Join(w.dataDir, CategoriesDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create categories directory: %w", err)
	}

	cats := categories(rec)
	paths := make([]string, 0, len(cats))

	for _, cat := range cats {
		envelope := categoryEnvelope{
			Metadata: categoryMetadata{
				ExportID:  w.exportID,
				FetchedAt: rec.FetchedAt,
				DateRange: rec.DateRange,
				Category:  cat.name,
				Count:     cat.count,
			},
			Data: cat.data,
		}

		data, err := json.MarshalIndent(envelope, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode category %s: %w", cat.name, err)
		}
		data = append(data, '\n')

		path := filepath.Join(dir, cat.name+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write category %s: %w", cat.name, err)
		}
		paths = append(paths, path)
	}

	w.logger.Info().Int("categories", len(paths)).Str("dir", dir).Msg("Category files written")
	return paths, nil
}

// categories flattens the record into named chunks, in the same order
// as the full dump.
func categories(rec *export.AggregateRecord) []category {
	single := func(name string, p connect.Payload) category {
		count := 0
		if len(p) > 0 {
			count = 1
		}
		return category{name: name, data: p, count: count}
	}
	list := func(name string, l []connect.Payload) category {
		return category{name: name, data: l, count: len(l)}
	}

	return []category{
		single("user_profile", rec.UserProfile),
		single("personal_info", rec.PersonalInfo),
		single("user_settings", rec.UserSettings),
		list("devices", rec.Devices),
		single("device_last_used", rec.DeviceLastUsed),
		list("daily_stats", rec.DailyStats),
		list("sleep_history", rec.SleepHistory),
		list("heart_rate_history", rec.HeartRateHistory),
		list("hrv_history", rec.HRVHistory),
		list("stress_history", rec.StressHistory),
		list("body_battery_history", rec.BodyBatteryHistory),
		list("respiration_history", rec.RespirationHistory),
		list("spo2_history", rec.SpO2History),
		list("steps_history", rec.StepsHistory),
		list("floors_history", rec.FloorsHistory),
		list("intensity_minutes_history", rec.IntensityMinutesHistory),
		list("hydration_history", rec.HydrationHistory),
		single("weight_history", rec.WeightHistory),
		single("body_composition", rec.BodyComposition),
		single("blood_pressure", rec.BloodPressure),
		list("activities", rec.Activities),
		list("activity_types", rec.ActivityTypes),
		single("training_status", rec.TrainingStatus),
		list("training_readiness", rec.TrainingReadiness),
		list("max_metrics", rec.MaxMetrics),
		single("fitness_age", rec.FitnessAge),
		single("endurance_score", rec.EnduranceScore),
		single("hill_score", rec.HillScore),
		single("race_predictions", rec.RacePredictions),
		single("lactate_threshold", rec.LactateThreshold),
		list("personal_records", rec.PersonalRecords),
		list("goals", rec.Goals),
		list("earned_badges", rec.EarnedBadges),
		list("badge_challenges", rec.BadgeChallenges),
		list("gear", rec.Gear),
		list("workouts", rec.Workouts),
	}
}
