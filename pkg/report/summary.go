package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"garminexport/pkg/connect"
	"garminexport/pkg/export"
)

// SummaryFile is the file name of the compact health summary.
const SummaryFile = "garmin_health.json"

// Summary is the compact daily health snapshot derived from an
// aggregate record. All values are rounded for reading, not analysis;
// the full dump keeps the raw numbers.
type Summary struct {
	Date      string `json:"date"`
	UpdatedAt string `json:"updated_at"`

	DailyStats SummaryDailyStats `json:"daily_stats"`
	Sleep      SummarySleep      `json:"sleep"`
	HRV        SummaryHRV        `json:"hrv"`
	Body       SummaryBody       `json:"body"`
	Training   SummaryTraining   `json:"training"`

	RecentActivities []SummaryActivity `json:"recent_activities"`
	DataCounts       map[string]int    `json:"data_counts"`
}

// SummaryDailyStats condenses the newest daily wellness summary.
type SummaryDailyStats struct {
	Steps            int     `json:"steps"`
	DistanceKm       float64 `json:"distance_km"`
	Calories         int     `json:"calories"`
	ActiveCalories   int     `json:"active_calories"`
	RestingHeartRate int     `json:"resting_heart_rate"`
	MinHeartRate     int     `json:"min_heart_rate"`
	MaxHeartRate     int     `json:"max_heart_rate"`
	StressLevel      int     `json:"stress_level"`
	BodyBatteryHigh  int     `json:"body_battery_high"`
	BodyBatteryLow   int     `json:"body_battery_low"`
	FloorsClimbed    int     `json:"floors_climbed"`
}

// SummarySleep condenses the newest night.
type SummarySleep struct {
	Hours        float64 `json:"hours"`
	DeepSeconds  int     `json:"deep_seconds"`
	LightSeconds int     `json:"light_seconds"`
	RemSeconds   int     `json:"rem_seconds"`
	AwakeSeconds int     `json:"awake_seconds"`
	Score        int     `json:"score"`
}

// SummaryHRV condenses the newest heart rate variability reading.
type SummaryHRV struct {
	WeeklyAverage    int    `json:"weekly_average"`
	LastNightAverage int    `json:"last_night_average"`
	Status           string `json:"status"`
}

// SummaryBody condenses the body composition snapshot.
type SummaryBody struct {
	WeightKg       float64 `json:"weight_kg"`
	BMI            float64 `json:"bmi"`
	BodyFatPercent float64 `json:"body_fat_percent"`
	MuscleMassKg   float64 `json:"muscle_mass_kg"`
}

// SummaryTraining condenses training status and readiness.
type SummaryTraining struct {
	Status         string  `json:"status"`
	ReadinessScore int     `json:"readiness_score"`
	ReadinessLevel string  `json:"readiness_level"`
	VO2Max         float64 `json:"vo2max"`
	FitnessAge     float64 `json:"fitness_age"`
}

// SummaryActivity is one line of the recent activity list.
type SummaryActivity struct {
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Date            string  `json:"date"`
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
	Calories        int     `json:"calories"`
}

// BuildSummary derives the compact snapshot from an aggregate record.
// Newest entries win; categories without data yield zero values.
func BuildSummary(rec *export.AggregateRecord, now time.Time) *Summary {
	sum := &Summary{
		Date:             rec.DateRange.End,
		UpdatedAt:        now.Format(time.RFC3339),
		RecentActivities: []SummaryActivity{},
		DataCounts:       dataCounts(rec),
	}

	if len(rec.DailyStats) > 0 {
		sum.DailyStats = summarizeDaily(rec.DailyStats[0])
	}
	if len(rec.SleepHistory) > 0 {
		sum.Sleep = summarizeSleep(rec.SleepHistory[0])
	}
	if len(rec.HRVHistory) > 0 {
		sum.HRV = summarizeHRV(rec.HRVHistory[0])
	}
	sum.Body = summarizeBody(rec.BodyComposition)
	sum.Training = summarizeTraining(rec)

	for i, activity := range rec.Activities {
		if i == 5 {
			break
		}
		sum.RecentActivities = append(sum.RecentActivities, summarizeActivity(activity))
	}

	return sum
}

func summarizeDaily(daily connect.Payload) SummaryDailyStats {
	return SummaryDailyStats{
		Steps:            int(num(daily, "totalSteps")),
		DistanceKm:       round2(num(daily, "totalDistanceMeters") / 1000),
		Calories:         int(num(daily, "totalKilocalories")),
		ActiveCalories:   int(num(daily, "activeKilocalories")),
		RestingHeartRate: int(num(daily, "restingHeartRate")),
		MinHeartRate:     int(num(daily, "minHeartRate")),
		MaxHeartRate:     int(num(daily, "maxHeartRate")),
		StressLevel:      int(num(daily, "averageStressLevel")),
		BodyBatteryHigh:  int(num(daily, "bodyBatteryHighestValue")),
		BodyBatteryLow:   int(num(daily, "bodyBatteryLowestValue")),
		FloorsClimbed:    int(num(daily, "floorsAscended")),
	}
}

func summarizeSleep(sleep connect.Payload) SummarySleep {
	scores := child(sleep, "sleepScores")
	overall := child(scores, "overall")

	return SummarySleep{
		Hours:        round1(num(sleep, "sleepTimeSeconds") / 3600),
		DeepSeconds:  int(num(sleep, "deepSleepSeconds")),
		LightSeconds: int(num(sleep, "lightSleepSeconds")),
		RemSeconds:   int(num(sleep, "remSleepSeconds")),
		AwakeSeconds: int(num(sleep, "awakeSleepSeconds")),
		Score:        int(num(overall, "value")),
	}
}

func summarizeHRV(hrv connect.Payload) SummaryHRV {
	summary := child(hrv, "hrvSummary")

	return SummaryHRV{
		WeeklyAverage:    int(num(summary, "weeklyAvg")),
		LastNightAverage: int(num(summary, "lastNightAvg")),
		Status:           str(summary, "status"),
	}
}

func summarizeBody(comp connect.Payload) SummaryBody {
	// Garmin reports weight and muscle mass in grams
	average := child(comp, "totalAverage")

	return SummaryBody{
		WeightKg:       round1(num(average, "weight") / 1000),
		BMI:            round1(num(average, "bmi")),
		BodyFatPercent: round1(num(average, "bodyFat")),
		MuscleMassKg:   round1(num(average, "muscleMass") / 1000),
	}
}

func summarizeTraining(rec *export.AggregateRecord) SummaryTraining {
	training := SummaryTraining{
		Status:     trainingStatusPhrase(rec.TrainingStatus),
		VO2Max:     num(child(child(rec.TrainingStatus, "mostRecentVO2Max"), "generic"), "vo2MaxValue"),
		FitnessAge: round1(num(rec.FitnessAge, "fitnessAge")),
	}

	if len(rec.TrainingReadiness) > 0 {
		readiness := rec.TrainingReadiness[0]
		training.ReadinessScore = int(num(readiness, "score"))
		training.ReadinessLevel = str(readiness, "level")
	}

	return training
}

// trainingStatusPhrase digs the feedback phrase out of the aggregated
// status payload, which keys the latest data by device ID.
func trainingStatusPhrase(status connect.Payload) string {
	latest := child(child(status, "mostRecentTrainingStatus"), "latestTrainingStatusData")
	for _, v := range latest {
		if device, ok := v.(map[string]any); ok {
			if phrase := str(device, "trainingStatusFeedbackPhrase"); phrase != "" {
				return phrase
			}
		}
	}
	return ""
}

func summarizeActivity(activity connect.Payload) SummaryActivity {
	date := str(activity, "startTimeLocal")
	if len(date) > 10 {
		date = date[:10]
	}

	return SummaryActivity{
		Name:            str(activity, "activityName"),
		Type:            str(child(activity, "activityType"), "typeKey"),
		Date:            date,
		DistanceKm:      round2(num(activity, "distance") / 1000),
		DurationMinutes: round1(num(activity, "duration") / 60),
		Calories:        int(num(activity, "calories")),
	}
}

// dataCounts reports how much data each category carries: list lengths
// for list categories, 0 or 1 for single payloads.
func dataCounts(rec *export.AggregateRecord) map[string]int {
	presence := func(p connect.Payload) int {
		if len(p) > 0 {
			return 1
		}
		return 0
	}

	return map[string]int{
		"user_profile":              presence(rec.UserProfile),
		"personal_info":             presence(rec.PersonalInfo),
		"user_settings":             presence(rec.UserSettings),
		"devices":                   len(rec.Devices),
		"device_last_used":          presence(rec.DeviceLastUsed),
		"daily_stats":               len(rec.DailyStats),
		"sleep_history":             len(rec.SleepHistory),
		"heart_rate_history":        len(rec.HeartRateHistory),
		"hrv_history":               len(rec.HRVHistory),
		"stress_history":            len(rec.StressHistory),
		"body_battery_history":      len(rec.BodyBatteryHistory),
		"respiration_history":       len(rec.RespirationHistory),
		"spo2_history":              len(rec.SpO2History),
		"steps_history":             len(rec.StepsHistory),
		"floors_history":            len(rec.FloorsHistory),
		"intensity_minutes_history": len(rec.IntensityMinutesHistory),
		"hydration_history":         len(rec.HydrationHistory),
		"weight_history":            presence(rec.WeightHistory),
		"body_composition":          presence(rec.BodyComposition),
		"blood_pressure":            presence(rec.BloodPressure),
		"activities":                len(rec.Activities),
		"activity_types":            len(rec.ActivityTypes),
		"training_status":           presence(rec.TrainingStatus),
		"training_readiness":        len(rec.TrainingReadiness),
		"max_metrics":               len(rec.MaxMetrics),
		"fitness_age":               presence(rec.FitnessAge),
		"endurance_score":           presence(rec.EnduranceScore),
		"hill_score":                presence(rec.HillScore),
		"race_predictions":          presence(rec.RacePredictions),
		"lactate_threshold":         presence(rec.LactateThreshold),
		"personal_records":          len(rec.PersonalRecords),
		"goals":                     len(rec.Goals),
		"earned_badges":             len(rec.EarnedBadges),
		"badge_challenges":          len(rec.BadgeChallenges),
		"gear":                      len(rec.Gear),
		"workouts":                  len(rec.Workouts),
	}
}

// WriteSummaryJSON writes the compact summary and returns the artifact
// path.
func (w *Writer) WriteSummaryJSON(sum *Summary) (string, error) {
	path := filepath.Join(w.dataDir, SummaryFile)

	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode summary: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}

	w.logger.Info().Str("path", path).Msg("Summary written")
	return path, nil
}
