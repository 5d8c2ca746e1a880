package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"garminexport/pkg/export"
)

// MarkdownFile is the file name of the human-readable digest.
const MarkdownFile = "health_summary.md"

// WriteMarkdown renders the digest and returns the artifact path. Every
// section appears even when its category is empty; an empty section
// carries a short "no data" line instead of numbers.
func (w *Writer) WriteMarkdown(rec *export.AggregateRecord, sum *Summary) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Garmin Health Summary\n\n")
	fmt.Fprintf(&b, "Generated %s covering %s to %s (%d days).\n",
		sum.UpdatedAt, rec.DateRange.Start, rec.DateRange.End, rec.DateRange.Days)

	writeProfileSection(&b, rec, sum)
	writeDailySection(&b, sum)
	writeSleepSection(&b, sum)
	writeHRVSection(&b, sum)
	writeTrainingSection(&b, sum)
	writeActivitiesSection(&b, rec)
	writeAvailabilitySection(&b, rec)

	path := filepath.Join(w.dataDir, MarkdownFile)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write markdown digest: %w", err)
	}

	w.logger.Info().Str("path", path).Msg("Markdown digest written")
	return path, nil
}

func writeProfileSection(b *strings.Builder, rec *export.AggregateRecord, sum *Summary) {
	fmt.Fprintf(b, "\n## User Profile\n\n")
	if sum.DataCounts["user_profile"] == 0 {
		fmt.Fprintf(b, "No profile data.\n")
		return
	}

	fmt.Fprintf(b, "- **Name:** %s\n", str(rec.UserProfile, "fullName"))
	if rec.UnitSystem != "" {
		fmt.Fprintf(b, "- **Unit system:** %s\n", rec.UnitSystem)
	}
}

func writeDailySection(b *strings.Builder, sum *Summary) {
	fmt.Fprintf(b, "\n## Today's Stats (%s)\n\n", sum.Date)
	if sum.DataCounts["daily_stats"] == 0 {
		fmt.Fprintf(b, "No daily stats available.\n")
		return
	}

	d := sum.DailyStats
	fmt.Fprintf(b, "- **Steps:** %d (%.2f km)\n", d.Steps, d.DistanceKm)
	fmt.Fprintf(b, "- **Calories:** %d total, %d active\n", d.Calories, d.ActiveCalories)
	fmt.Fprintf(b, "- **Heart rate:** %d resting, %d to %d range\n",
		d.RestingHeartRate, d.MinHeartRate, d.MaxHeartRate)
	fmt.Fprintf(b, "- **Stress level:** %d\n", d.StressLevel)
	fmt.Fprintf(b, "- **Body battery:** high %d, low %d\n", d.BodyBatteryHigh, d.BodyBatteryLow)
	fmt.Fprintf(b, "- **Floors climbed:** %d\n", d.FloorsClimbed)
}

func writeSleepSection(b *strings.Builder, sum *Summary) {
	fmt.Fprintf(b, "\n## Last Night's Sleep\n\n")
	if sum.DataCounts["sleep_history"] == 0 {
		fmt.Fprintf(b, "No sleep data available.\n")
		return
	}

	s := sum.Sleep
	fmt.Fprintf(b, "- **Duration:** %.1f hours\n", s.Hours)
	if s.Score > 0 {
		fmt.Fprintf(b, "- **Score:** %d\n", s.Score)
	}
	fmt.Fprintf(b, "- **Phases:** deep %s, light %s, REM %s, awake %s\n",
		minutes(s.DeepSeconds), minutes(s.LightSeconds), minutes(s.RemSeconds), minutes(s.AwakeSeconds))
}

func writeHRVSection(b *strings.Builder, sum *Summary) {
	fmt.Fprintf(b, "\n## Heart Rate Variability\n\n")
	if sum.DataCounts["hrv_history"] == 0 {
		fmt.Fprintf(b, "No HRV data available.\n")
		return
	}

	h := sum.HRV
	fmt.Fprintf(b, "- **Weekly average:** %d ms\n", h.WeeklyAverage)
	fmt.Fprintf(b, "- **Last night:** %d ms\n", h.LastNightAverage)
	if h.Status != "" {
		fmt.Fprintf(b, "- **Status:** %s\n", h.Status)
	}
}

func writeTrainingSection(b *strings.Builder, sum *Summary) {
	fmt.Fprintf(b, "\n## Training Status\n\n")

	t := sum.Training
	if t.Status == "" && t.ReadinessScore == 0 && t.VO2Max == 0 && t.FitnessAge == 0 {
		fmt.Fprintf(b, "No training data available.\n")
		return
	}

	if t.Status != "" {
		fmt.Fprintf(b, "- **Status:** %s\n", t.Status)
	}
	if t.ReadinessScore > 0 {
		fmt.Fprintf(b, "- **Readiness:** %d (%s)\n", t.ReadinessScore, t.ReadinessLevel)
	}
	if t.VO2Max > 0 {
		fmt.Fprintf(b, "- **VO2 max:** %.1f\n", t.VO2Max)
	}
	if t.FitnessAge > 0 {
		fmt.Fprintf(b, "- **Fitness age:** %.1f\n", t.FitnessAge)
	}
}

func writeActivitiesSection(b *strings.Builder, rec *export.AggregateRecord) {
	fmt.Fprintf(b, "\n## Recent Activities\n\n")
	if len(rec.Activities) == 0 {
		fmt.Fprintf(b, "No recent activities.\n")
		return
	}

	fmt.Fprintf(b, "| Date | Activity | Type | Distance | Duration | Calories |\n")
	fmt.Fprintf(b, "|------|----------|------|----------|----------|----------|\n")
	for i, raw := range rec.Activities {
		if i == 10 {
			break
		}
		a := summarizeActivity(raw)
		fmt.Fprintf(b, "| %s | %s | %s | %.2f km | %.1f min | %d |\n",
			a.Date, a.Name, a.Type, a.DistanceKm, a.DurationMinutes, a.Calories)
	}
}

func writeAvailabilitySection(b *strings.Builder, rec *export.AggregateRecord) {
	fmt.Fprintf(b, "\n## Data Availability\n\n")
	fmt.Fprintf(b, "| Category | Items |\n")
	fmt.Fprintf(b, "|----------|-------|\n")
	for _, cat := range categories(rec) {
		fmt.Fprintf(b, "| %s | %d |\n", cat.name, cat.count)
	}
}

func minutes(seconds int) string {
	return fmt.Sprintf("%d min", seconds/60)
}

// WriteAll produces every artifact for one export run: the full dump,
// the compact summary, the per-category files, and the Markdown digest.
// It returns the paths of everything written.
func (w *Writer) WriteAll(rec *export.AggregateRecord, now time.Time) ([]string, error) {
	sum := BuildSummary(rec, now)
	paths := make([]string, 0, 4)

	fullPath, err := w.WriteFullDump(rec)
	if err != nil {
		return paths, err
	}
	paths = append(paths, fullPath)

	summaryPath, err := w.WriteSummaryJSON(sum)
	if err != nil {
		return paths, err
	}
	paths = append(paths, summaryPath)

	categoryPaths, err := w.WriteCategoryFiles(rec)
	if err != nil {
		return paths, err
	}
	paths = append(paths, categoryPaths...)

	markdownPath, err := w.WriteMarkdown(rec, sum)
	if err != nil {
		return paths, err
	}
	paths = append(paths, markdownPath)

	w.logger.Info().Int("artifacts", len(paths)).Str("export_id", w.exportID).Msg("Export artifacts written")
	return paths, nil
}
