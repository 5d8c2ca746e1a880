package export

import (
	"garminexport/pkg/connect"
)

// DateRangeInfo describes the calendar window an export covers.
type DateRangeInfo struct {
	// Start is the oldest day in the window (YYYY-MM-DD).
	Start string `json:"start"`

	// End is the newest day, always today (YYYY-MM-DD).
	End string `json:"end"`

	// Days is the number of days in the window, including today.
	Days int `json:"days"`
}

// AggregateRecord is everything one export run pulls out of Garmin
// Connect. Field order is the JSON key order of the full dump, so it
// stays fixed. Map fields are never nil ({} in JSON), list fields are
// never nil ([] in JSON).
type AggregateRecord struct {
	FetchedAt string        `json:"fetched_at"`
	DateRange DateRangeInfo `json:"date_range"`

	// Account and device state.
	UserProfile    connect.Payload   `json:"user_profile"`
	PersonalInfo   connect.Payload   `json:"personal_info"`
	UserSettings   connect.Payload   `json:"user_settings"`
	UnitSystem     string            `json:"unit_system"`
	Devices        []connect.Payload `json:"devices"`
	DeviceLastUsed connect.Payload   `json:"device_last_used"`

	// Per-day histories, newest first, one entry per day with data.
	DailyStats              []connect.Payload `json:"daily_stats"`
	SleepHistory            []connect.Payload `json:"sleep_history"`
	HeartRateHistory        []connect.Payload `json:"heart_rate_history"`
	HRVHistory              []connect.Payload `json:"hrv_history"`
	StressHistory           []connect.Payload `json:"stress_history"`
	BodyBatteryHistory      []connect.Payload `json:"body_battery_history"`
	RespirationHistory      []connect.Payload `json:"respiration_history"`
	SpO2History             []connect.Payload `json:"spo2_history"`
	StepsHistory            []connect.Payload `json:"steps_history"`
	FloorsHistory           []connect.Payload `json:"floors_history"`
	IntensityMinutesHistory []connect.Payload `json:"intensity_minutes_history"`
	HydrationHistory        []connect.Payload `json:"hydration_history"`

	// Body measurements over the export window.
	WeightHistory   connect.Payload `json:"weight_history"`
	BodyComposition connect.Payload `json:"body_composition"`
	BloodPressure   connect.Payload `json:"blood_pressure"`

	// Activities and training state.
	Activities        []connect.Payload `json:"activities"`
	ActivityTypes     []connect.Payload `json:"activity_types"`
	TrainingStatus    connect.Payload   `json:"training_status"`
	TrainingReadiness []connect.Payload `json:"training_readiness"`
	MaxMetrics        []connect.Payload `json:"max_metrics"`
	FitnessAge        connect.Payload   `json:"fitness_age"`
	EnduranceScore    connect.Payload   `json:"endurance_score"`
	HillScore         connect.Payload   `json:"hill_score"`
	RacePredictions   connect.Payload   `json:"race_predictions"`
	LactateThreshold  connect.Payload   `json:"lactate_threshold"`
	PersonalRecords   []connect.Payload `json:"personal_records"`

	// Goals, badges, gear, workouts.
	Goals           []connect.Payload `json:"goals"`
	EarnedBadges    []connect.Payload `json:"earned_badges"`
	BadgeChallenges []connect.Payload `json:"badge_challenges"`
	Gear            []connect.Payload `json:"gear"`
	Workouts        []connect.Payload `json:"workouts"`
}
