package export

import (
	"testing"
	"time"
)

func TestDateRange(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		days int
		want []string
	}{
		{
			name: "zero days covers today",
			days: 0,
			want: []string{"2026-08-23"},
		},
		{
			name: "two days back",
			days: 2,
			want: []string{"2026-08-23", "2026-08-22", "2026-08-21"},
		},
		{
			name: "negative treated as zero",
			days: -5,
			want: []string{"2026-08-23"},
		},
		{
			name: "crosses month boundary",
			days: 25,
			want: nil, // checked below by endpoints only
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DateRange(now, tt.days)

			if tt.want != nil {
				if len(got) != len(tt.want) {
					t.Fatalf("DateRange returned %d dates, want %d", len(got), len(tt.want))
				}
				for i := range tt.want {
					if got[i] != tt.want[i] {
						t.Errorf("dates[%d] = %s, want %s", i, got[i], tt.want[i])
					}
				}
				return
			}

			// Month-crossing case: check length and endpoints
			if len(got) != 26 {
				t.Fatalf("DateRange returned %d dates, want 26", len(got))
			}
			if got[0] != "2026-08-23" {
				t.Errorf("first date = %s, want 2026-08-23", got[0])
			}
			if got[25] != "2026-07-29" {
				t.Errorf("last date = %s, want 2026-07-29", got[25])
			}
		})
	}
}

func TestDateRange_NewestFirst(t *testing.T) {
	now := time.Date(2026, 8, 23, 23, 59, 59, 0, time.UTC)

	got := DateRange(now, 7)
	for i := 1; i < len(got); i++ {
		if got[i] >= got[i-1] {
			t.Errorf("dates[%d] = %s not older than dates[%d] = %s", i, got[i], i-1, got[i-1])
		}
	}
}
