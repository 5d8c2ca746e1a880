package testutil

import (
	"fmt"
)

// DailySummaryJSON builds a canned daily wellness summary.
func DailySummaryJSON(date string, steps int) string {
	return fmt.Sprintf(`{
		"calendarDate": %q,
		"totalSteps": %d,
		"totalDistanceMeters": 7213,
		"totalKilocalories": 2450.0,
		"activeKilocalories": 612.0,
		"restingHeartRate": 52,
		"minHeartRate": 48,
		"maxHeartRate": 141,
		"averageStressLevel": 31,
		"bodyBatteryHighestValue": 88,
		"bodyBatteryLowestValue": 23,
		"floorsAscended": 12.0
	}`, date, steps)
}

// SleepJSON builds a canned sleep response in the wire shape: summary
// fields inside dailySleepDTO plus a sleepLevels series.
func SleepJSON(date string, sleepSeconds int) string {
	return fmt.Sprintf(`{
		"dailySleepDTO": {
			"id": 1755820800000,
			"calendarDate": %q,
			"sleepTimeSeconds": %d,
			"deepSleepSeconds": 5520,
			"lightSleepSeconds": 14160,
			"remSleepSeconds": 6240,
			"awakeSleepSeconds": 1440,
			"sleepScores": {"overall": {"value": 82}}
		},
		"sleepLevels": [
			{"startGMT": "2026-08-22T22:10:00.0", "endGMT": "2026-08-22T23:02:00.0", "activityLevel": 1.0}
		]
	}`, date, sleepSeconds)
}

// EmptySleepJSON builds the shell Garmin answers for a night without
// sleep data: a DTO with a null id.
func EmptySleepJSON(date string) string {
	return fmt.Sprintf(`{"dailySleepDTO": {"id": null, "calendarDate": %q}, "sleepLevels": []}`, date)
}

// HRVJSON builds a canned heart rate variability response.
func HRVJSON(date string, weeklyAvg int) string {
	return fmt.Sprintf(`{
		"hrvSummary": {
			"calendarDate": %q,
			"weeklyAvg": %d,
			"lastNightAvg": 58,
			"status": "BALANCED"
		}
	}`, date, weeklyAvg)
}

// defaultCatalogue seeds every endpoint the exporter touches with a
// small deterministic payload.
func defaultCatalogue() map[string]string {
	return map[string]string{
		"/userprofile-service/socialProfile": `{
			"id": 99,
			"profileId": 1234567,
			"displayName": "a1b2c3d4",
			"fullName": "Test User",
			"userName": "testuser"
		}`,
		"/userprofile-service/userprofile/user-settings": `{
			"id": 99,
			"userData": {
				"gender": "MALE",
				"weight": 75000.0,
				"height": 180.0,
				"measurementSystem": "metric",
				"birthDate": "1992-03-14"
			}
		}`,
		"/userprofile-service/userprofile/personal-information": `{
			"userInfo": {"locale": "en", "timeZone": "Europe/Berlin"},
			"biometricProfile": {"height": 180.0, "weight": 75000.0, "vo2Max": 52.0}
		}`,
		"/device-service/deviceregistration/devices": `[
			{"deviceId": 3411809919, "productDisplayName": "Forerunner 965", "softwareVersion": "20.26"}
		]`,
		"/device-service/deviceservice/mylastused": `{
			"userDeviceId": 3411809919,
			"lastUsedDeviceName": "Forerunner 965",
			"lastUsedDeviceUploadTime": 1755907200000
		}`,
		"/usersummary-service/usersummary/daily":           DailySummaryJSON("2026-08-23", 9212),
		"/wellness-service/wellness/dailySleepData":        SleepJSON("2026-08-23", 27360),
		"/wellness-service/wellness/dailyHeartRate":        `{"restingHeartRate": 52, "maxHeartRate": 141, "minHeartRate": 48, "heartRateValues": [[1755907200000, 55], [1755907320000, 58]]}`,
		"/hrv-service/hrv/":                                HRVJSON("2026-08-23", 61),
		"/wellness-service/wellness/dailyStress/":          `{"avgStressLevel": 31, "maxStressLevel": 87, "stressValuesArray": [[1755907200000, 25]]}`,
		"/wellness-service/wellness/bodyBattery/reports/daily": `[
			{"date": "2026-08-23", "charged": 55, "drained": 70, "bodyBatteryValuesArray": [[1755907200000, 72]]}
		]`,
		"/wellness-service/wellness/daily/respiration/": `{"avgSleepRespirationValue": 14.0, "avgWakingRespirationValue": 15.0}`,
		"/wellness-service/wellness/daily/spo2/":        `{"averageSpO2": 95.0, "lowestSpO2": 90}`,
		"/wellness-service/wellness/dailySummaryChart": `[
			{"startGMT": "2026-08-23T06:00:00.0", "steps": 320, "primaryActivityLevel": "active"}
		]`,
		"/wellness-service/wellness/floorsChartData/daily/": `[
			{"startTimeGMT": "2026-08-23T06:00:00.0", "floorsAscended": 2, "floorsDescended": 1}
		]`,
		"/wellness-service/wellness/daily/im/":           `{"moderateIntensityMinutes": 22, "vigorousIntensityMinutes": 14, "imWeeklyGoal": 150}`,
		"/usersummary-service/usersummary/hydration/daily/": `{"valueInML": 1450.0, "goalInML": 2500.0}`,
		"/weight-service/weight/range/": `{
			"dailyWeightSummaries": [
				{"summaryDate": "2026-08-22", "allWeightMetrics": [{"weight": 75300.0, "bmi": 23.2}]}
			]
		}`,
		"/bloodpressure-service/bloodpressure/range/": `{
			"measurementSummaries": [
				{"measurementDate": "2026-08-21", "systolic": 118, "diastolic": 74, "pulse": 56}
			]
		}`,
		"/weight-service/weight/daterangesnapshot": `{
			"dateWeightList": [{"date": 1755820800000, "weight": 75300.0, "bmi": 23.2, "bodyFat": 15.2, "muscleMass": 33200.0}],
			"totalAverage": {"weight": 75300.0, "bmi": 23.2, "bodyFat": 15.2, "muscleMass": 33200.0}
		}`,
		"/activitylist-service/activities/search/activities": `[
			{"activityId": 101, "activityName": "Morning Run", "startTimeLocal": "2026-08-22 07:01:00", "distance": 8012.0, "duration": 2712.0, "calories": 520.0, "activityType": {"typeKey": "running"}},
			{"activityId": 100, "activityName": "Evening Ride", "startTimeLocal": "2026-08-20 18:30:00", "distance": 24500.0, "duration": 4520.0, "calories": 701.0, "activityType": {"typeKey": "cycling"}}
		]`,
		"/activity-service/activity/activityTypes": `[
			{"typeId": 1, "typeKey": "running"},
			{"typeId": 2, "typeKey": "cycling"}
		]`,
		"/metrics-service/metrics/trainingstatus/aggregated/": `{
			"userId": 99,
			"mostRecentVO2Max": {"generic": {"vo2MaxValue": 52.0, "vo2MaxPreciseValue": 52.3}},
			"mostRecentTrainingStatus": {
				"latestTrainingStatusData": {
					"3411809919": {"trainingStatus": 13, "trainingStatusFeedbackPhrase": "PRODUCTIVE_1", "calendarDate": "2026-08-23"}
				}
			}
		}`,
		"/metrics-service/metrics/trainingreadiness/": `[
			{"calendarDate": "2026-08-23", "score": 78, "level": "HIGH", "feedbackShort": "READY_TO_GO"}
		]`,
		"/metrics-service/metrics/maxmet/daily/": `[
			{"generic": {"calendarDate": "2026-08-23", "vo2MaxValue": 52.0}}
		]`,
		"/fitnessage-service/fitnessage/":           `{"chronologicalAge": 34, "fitnessAge": 29.5, "achievableFitnessAge": 26.0}`,
		"/metrics-service/metrics/endurancescore":   `{"calendarDate": "2026-08-23", "overallScore": 6820, "classification": 3}`,
		"/metrics-service/metrics/hillscore":        `{"calendarDate": "2026-08-23", "overallScore": 62, "hillEnduranceScore": 58}`,
		"/metrics-service/metrics/racepredictions/latest": `{
			"calendarDate": "2026-08-23",
			"time5K": 1302, "time10K": 2748, "timeHalfMarathon": 6180, "timeMarathon": 13200
		}`,
		"/biometric-service/biometric/latest": `{"lactateThresholdHeartRate": 168, "lactateThresholdSpeed": 3.42}`,
		"/personalrecord-service/personalrecord/prs": `[
			{"typeId": 3, "activityId": 87, "value": 1302.0}
		]`,
		"/goal-management-service/goals": `[
			{"goalId": 11, "goalType": "STEPS", "goalValue": 10000, "status": "active"}
		]`,
		"/badge-service/badge/earned": `[
			{"badgeId": 7, "badgeKey": "OCTOBER_CHALLENGE", "badgePoints": 2}
		]`,
		"/badgechallenge-service/badgeChallenge/available": `[
			{"badgeChallengeId": 15, "badgeChallengeName": "September Cycling"}
		]`,
		"/gear-service/gear/filterGear": `[
			{"gearPk": 5, "displayName": "Pegasus 41", "gearType": "shoes", "maximumMeters": 800000.0}
		]`,
		"/workout-service/workouts": `[
			{"workoutId": 21, "workoutName": "Threshold Intervals", "sportType": {"sportTypeKey": "running"}}
		]`,
	}
}
