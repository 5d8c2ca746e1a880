package ratelimit

import (
	"testing"
	"time"
)

func TestNewPacer(t *testing.T) {
	tests := []struct {
		name  string
		delay time.Duration
		want  time.Duration
	}{
		{
			name:  "positive delay",
			delay: 500 * time.Millisecond,
			want:  500 * time.Millisecond,
		},
		{
			name:  "zero delay",
			delay: 0,
			want:  0,
		},
		{
			name:  "negative delay clamped to zero",
			delay: -1 * time.Second,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPacer(tt.delay)
			if got := p.Delay(); got != tt.want {
				t.Errorf("Delay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPacer_Wait(t *testing.T) {
	p := NewPacer(20 * time.Millisecond)

	start := time.Now()
	p.Wait()
	elapsed := time.Since(start)

	if elapsed < 20*time.Millisecond {
		t.Errorf("Wait returned after %v, want at least 20ms", elapsed)
	}
}

func TestPacer_Wait_ZeroDelay(t *testing.T) {
	p := NewPacer(0)

	start := time.Now()
	p.Wait()
	elapsed := time.Since(start)

	// No sleep: allow generous scheduling slack but nothing near a real delay
	if elapsed > 10*time.Millisecond {
		t.Errorf("Zero-delay Wait took %v, want immediate return", elapsed)
	}
}
