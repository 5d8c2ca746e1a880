package connect

import (
	"context"
	"fmt"
)

// Endpoint methods below follow the Garmin Connect service layout. Dated
// endpoints take a calendar day as YYYY-MM-DD; range endpoints take an
// inclusive start and end day.

// SocialProfile returns the user's public profile. It doubles as the
// cheapest way to check whether a session is still accepted.
func (c *Client) SocialProfile(ctx context.Context) (Payload, error) {
	return c.getPayload(ctx, "social_profile", "/userprofile-service/socialProfile", "")
}

// UserSettings returns account and device preference settings.
func (c *Client) UserSettings(ctx context.Context) (Payload, error) {
	return c.getPayload(ctx, "user_settings", "/userprofile-service/userprofile/user-settings", "")
}

// PersonalInformation returns locale and measurement information.
func (c *Client) PersonalInformation(ctx context.Context) (Payload, error) {
	return c.getPayload(ctx, "personal_information", "/userprofile-service/userprofile/personal-information", "")
}

// Devices returns all registered devices.
func (c *Client) Devices(ctx context.Context) ([]Payload, error) {
	return c.getPayloadList(ctx, "devices", "/device-service/deviceregistration/devices", "")
}

// DeviceLastUsed returns the most recently synced device.
func (c *Client) DeviceLastUsed(ctx context.Context) (Payload, error) {
	return c.getPayload(ctx, "device_last_used", "/device-service/deviceservice/mylastused", "")
}

// DailySummary returns the wellness summary for one day.
func (c *Client) DailySummary(ctx context.Context, date string) (Payload, error) {
	path := "/usersummary-service/usersummary/daily?calendarDate=" + date
	return c.getPayload(ctx, "daily_summary", path, date)
}

// SleepData returns sleep stages and levels for one night.
func (c *Client) SleepData(ctx context.Context, date string) (Payload, error) {
	path := "/wellness-service/wellness/dailySleepData?date=" + date + "&nonSleepBufferMinutes=60"
	return c.getPayload(ctx, "sleep", path, date)
}

// HeartRates returns the heart rate series for one day.
func (c *Client) HeartRates(ctx context.Context, date string) (Payload, error) {
	path := "/wellness-service/wellness/dailyHeartRate?date=" + date
	return c.getPayload(ctx, "heart_rate", path, date)
}

// HRVData returns heart rate variability readings for one night.
func (c *Client) HRVData(ctx context.Context, date string) (Payload, error) {
	return c.getPayload(ctx, "hrv", "/hrv-service/hrv/"+date, date)
}

// StressData returns the stress level series for one day.
func (c *Client) StressData(ctx context.Context, date string) (Payload, error) {
	return c.getPayload(ctx, "stress", "/wellness-service/wellness/dailyStress/"+date, date)
}

// BodyBatteryEvents returns body battery events for one day.
func (c *Client) BodyBatteryEvents(ctx context.Context, date string) ([]Payload, error) {
	path := "/wellness-service/wellness/bodyBattery/reports/daily?startDate=" + date + "&endDate=" + date
	return c.getPayloadList(ctx, "body_battery", path, date)
}

// Respiration returns the respiration rate series for one day.
func (c *Client) Respiration(ctx context.Context, date string) (Payload, error) {
	return c.getPayload(ctx, "respiration", "/wellness-service/wellness/daily/respiration/"+date, date)
}

// SpO2 returns pulse ox readings for one day.
func (c *Client) SpO2(ctx context.Context, date string) (Payload, error) {
	return c.getPayload(ctx, "spo2", "/wellness-service/wellness/daily/spo2/"+date, date)
}

// DailySteps returns the step series for one day.
func (c *Client) DailySteps(ctx context.Context, date string) ([]Payload, error) {
	path := "/wellness-service/wellness/dailySummaryChart?date=" + date
	return c.getPayloadList(ctx, "steps", path, date)
}

// DailyFloors returns floors climbed and descended for one day.
func (c *Client) DailyFloors(ctx context.Context, date string) ([]Payload, error) {
	return c.getPayloadList(ctx, "floors", "/wellness-service/wellness/floorsChartData/daily/"+date, date)
}

// IntensityMinutes returns moderate/vigorous intensity minutes for one day.
func (c *Client) IntensityMinutes(ctx context.Context, date string) (Payload, error) {
	return c.getPayload(ctx, "intensity_minutes", "/wellness-service/wellness/daily/im/"+date, date)
}

// Hydration returns hydration log data for one day.
func (c *Client) Hydration(ctx context.Context, date string) (Payload, error) {
	return c.getPayload(ctx, "hydration", "/usersummary-service/usersummary/hydration/daily/"+date, date)
}

// WeighIns returns weigh-in summaries for an inclusive day range.
func (c *Client) WeighIns(ctx context.Context, start, end string) (Payload, error) {
	path := fmt.Sprintf("/weight-service/weight/range/%s/%s?includeAll=true", start, end)
	return c.getPayload(ctx, "weigh_ins", path, "")
}

// BloodPressure returns blood pressure measurements for an inclusive day range.
func (c *Client) BloodPressure(ctx context.Context, start, end string) (Payload, error) {
	path := fmt.Sprintf("/bloodpressure-service/bloodpressure/range/%s/%s?includeAll=true", start, end)
	return c.getPayload(ctx, "blood_pressure", path, "")
}

// BodyComposition returns weight, BMI, and body fat for one day.
func (c *Client) BodyComposition(ctx context.Context, date string) (Payload, error) {
	path := fmt.Sprintf("/weight-service/weight/daterangesnapshot?startDate=%s&endDate=%s", date, date)
	return c.getPayload(ctx, "body_composition", path, date)
}

// Activities returns a page of the activity list, newest first.
func (c *Client) Activities(ctx context.Context, start, limit int) ([]Payload, error) {
	path := fmt.Sprintf("/activitylist-service/activities/search/activities?start=%d&limit=%d", start, limit)
	return c.getPayloadList(ctx, "activities", path, "")
}

// ActivityTypes returns the activity type catalogue.
func (c *Client) ActivityTypes(ctx context.Context) ([]Payload, error) {
	return c.getPayloadList(ctx, "activity_types", "/activity-service/activity/activityTypes", "")
}

// TrainingStatus returns the aggregated training status as of a day.
func (c *Client) TrainingStatus(ctx context.Context, date string) (Payload, error) {
	return c.getPayload(ctx, "training_status", "/metrics-service/metrics/trainingstatus/aggregated/"+date, date)
}

// TrainingReadiness returns training readiness entries as of a day.
func (c *Client) TrainingReadiness(ctx context.Context, date string) ([]Payload, error) {
	return c.getPayloadList(ctx, "training_readiness", "/metrics-service/metrics/trainingreadiness/"+date, date)
}

// MaxMetrics returns VO2 max and fitness metrics as of a day.
func (c *Client) MaxMetrics(ctx context.Context, date string) ([]Payload, error) {
	path := fmt.Sprintf("/metrics-service/metrics/maxmet/daily/%s/%s", date, date)
	return c.getPayloadList(ctx, "max_metrics", path, date)
}

// FitnessAge returns the computed fitness age as of a day.
func (c *Client) FitnessAge(ctx context.Context, date string) (Payload, error) {
	return c.getPayload(ctx, "fitness_age", "/fitnessage-service/fitnessage/"+date, date)
}

// EnduranceScore returns the endurance score as of a day.
func (c *Client) EnduranceScore(ctx context.Context, date string) (Payload, error) {
	return c.getPayload(ctx, "endurance_score", "/metrics-service/metrics/endurancescore?calendarDate="+date, date)
}

// HillScore returns the hill score as of a day.
func (c *Client) HillScore(ctx context.Context, date string) (Payload, error) {
	return c.getPayload(ctx, "hill_score", "/metrics-service/metrics/hillscore?calendarDate="+date, date)
}

// RacePredictions returns current race time predictions.
func (c *Client) RacePredictions(ctx context.Context) (Payload, error) {
	return c.getPayload(ctx, "race_predictions", "/metrics-service/metrics/racepredictions/latest", "")
}

// LactateThreshold returns the latest lactate threshold biometrics.
func (c *Client) LactateThreshold(ctx context.Context) (Payload, error) {
	return c.getPayload(ctx, "lactate_threshold", "/biometric-service/biometric/latest", "")
}

// PersonalRecords returns all personal records.
func (c *Client) PersonalRecords(ctx context.Context) ([]Payload, error) {
	return c.getPayloadList(ctx, "personal_records", "/personalrecord-service/personalrecord/prs", "")
}

// Goals returns goals filtered by status ("active", "future", or "past").
func (c *Client) Goals(ctx context.Context, status string) ([]Payload, error) {
	path := "/goal-management-service/goals?status=" + status + "&start=1&limit=30"
	return c.getPayloadList(ctx, "goals", path, "")
}

// EarnedBadges returns all badges the user has earned.
func (c *Client) EarnedBadges(ctx context.Context) ([]Payload, error) {
	return c.getPayloadList(ctx, "earned_badges", "/badge-service/badge/earned", "")
}

// AvailableBadgeChallenges returns joinable badge challenges.
func (c *Client) AvailableBadgeChallenges(ctx context.Context) ([]Payload, error) {
	return c.getPayloadList(ctx, "badge_challenges", "/badgechallenge-service/badgeChallenge/available", "")
}

// Gear returns all registered gear.
func (c *Client) Gear(ctx context.Context) ([]Payload, error) {
	return c.getPayloadList(ctx, "gear", "/gear-service/gear/filterGear", "")
}

// Workouts returns a page of stored workouts.
func (c *Client) Workouts(ctx context.Context, start, limit int) ([]Payload, error) {
	path := fmt.Sprintf("/workout-service/workouts?start=%d&limit=%d", start, limit)
	return c.getPayloadList(ctx, "workouts", path, "")
}
