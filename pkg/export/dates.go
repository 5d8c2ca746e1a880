package export

import (
	"time"
)

// DateRange returns the calendar dates an export covers: today first,
// then back one day at a time. days is how many days back to go; 0
// still covers today. Negative values are treated as 0.
func DateRange(now time.Time, days int) []string {
	if days < 0 {
		days = 0
	}

	dates := make([]string, 0, days+1)
	for i := 0; i <= days; i++ {
		dates = append(dates, now.AddDate(0, 0, -i).Format("2006-01-02"))
	}
	return dates
}
