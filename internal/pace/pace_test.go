package pace

import (
	"errors"
	"testing"
	"time"

	"github.com/pacelabs/paceforge/internal/config"
)

func mustCalculator(t *testing.T, perSegment time.Duration, segment, lap float64) *Calculator {
	t.Helper()
	c, err := NewCalculator(perSegment, segment, lap)
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	return c
}

// --- Calculator ---

func TestNewCalculatorRejectsBadParams(t *testing.T) {
	tests := []struct {
		name    string
		per     time.Duration
		segment float64
		lap     float64
	}{
		{"zero pace", 0, 100, 25},
		{"negative pace", -time.Second, 100, 25},
		{"zero segment", 2 * time.Minute, 0, 25},
		{"negative segment", 2 * time.Minute, -100, 25},
		{"zero lap", 2 * time.Minute, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCalculator(tt.per, tt.segment, tt.lap)
			if !errors.Is(err, config.ErrInvalidConfiguration) {
				t.Errorf("want ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestPerUnit(t *testing.T) {
	c := mustCalculator(t, 2*time.Minute, 100, 25)
	if got := c.PerUnit(); got != 1200*time.Millisecond {
		t.Errorf("PerUnit = %v, want 1.2s", got)
	}
}

func TestActivityDuration(t *testing.T) {
	c := mustCalculator(t, 2*time.Minute, 100, 25)
	if got := c.ActivityDuration(1000); got != 20*time.Minute {
		t.Errorf("ActivityDuration(1000) = %v, want 20m", got)
	}
}

// --- Checkpoints ---

func TestCheckpointsEvenDivision(t *testing.T) {
	// 2:00 per 100, announce every 25 over 100: four checkpoints at
	// 30s intervals.
	c := mustCalculator(t, 2*time.Minute, 100, 25)
	cps, err := c.Checkpoints(100, 25, "{distance}")
	if err != nil {
		t.Fatalf("Checkpoints: %v", err)
	}

	wantDist := []float64{25, 50, 75, 100}
	wantTime := []time.Duration{30 * time.Second, time.Minute, 90 * time.Second, 2 * time.Minute}
	if len(cps) != len(wantDist) {
		t.Fatalf("got %d checkpoints, want %d", len(cps), len(wantDist))
	}
	for i, cp := range cps {
		if cp.Distance != wantDist[i] {
			t.Errorf("checkpoint %d distance = %g, want %g", i, cp.Distance, wantDist[i])
		}
		if cp.Time != wantTime[i] {
			t.Errorf("checkpoint %d time = %v, want %v", i, cp.Time, wantTime[i])
		}
	}
}

func TestCheckpointsCount(t *testing.T) {
	c := mustCalculator(t, 2*time.Minute, 100, 25)
	cps, err := c.Checkpoints(1000, 25, "{distance}")
	if err != nil {
		t.Fatalf("Checkpoints: %v", err)
	}
	if len(cps) != 40 {
		t.Errorf("got %d checkpoints, want 40", len(cps))
	}
}

func TestCheckpointsPartialFinalInterval(t *testing.T) {
	// 110 over every-25: only the four completed intervals announce.
	c := mustCalculator(t, 2*time.Minute, 100, 25)
	cps, err := c.Checkpoints(110, 25, "{distance}")
	if err != nil {
		t.Fatalf("Checkpoints: %v", err)
	}
	if len(cps) != 4 {
		t.Fatalf("got %d checkpoints, want 4", len(cps))
	}
	if last := cps[len(cps)-1].Distance; last != 100 {
		t.Errorf("last checkpoint at %g, want 100", last)
	}
}

func TestCheckpointsIntervalLargerThanDistance(t *testing.T) {
	c := mustCalculator(t, 2*time.Minute, 100, 25)
	cps, err := c.Checkpoints(100, 200, "{distance}")
	if err != nil {
		t.Fatalf("Checkpoints: %v", err)
	}
	if len(cps) != 0 {
		t.Errorf("got %d checkpoints, want 0", len(cps))
	}
}

func TestCheckpointsStrictlyIncreasing(t *testing.T) {
	c := mustCalculator(t, 83*time.Second, 100, 50)
	cps, err := c.Checkpoints(1500, 100, "{distance}")
	if err != nil {
		t.Fatalf("Checkpoints: %v", err)
	}
	for i := 1; i < len(cps); i++ {
		if cps[i].Time <= cps[i-1].Time {
			t.Errorf("checkpoint %d time %v not after %v", i, cps[i].Time, cps[i-1].Time)
		}
	}
}

func TestCheckpointsRejectsBadParams(t *testing.T) {
	c := mustCalculator(t, 2*time.Minute, 100, 25)
	if _, err := c.Checkpoints(0, 25, "{distance}"); !errors.Is(err, config.ErrInvalidConfiguration) {
		t.Errorf("zero distance: want ErrInvalidConfiguration, got %v", err)
	}
	if _, err := c.Checkpoints(1000, 0, "{distance}"); !errors.Is(err, config.ErrInvalidConfiguration) {
		t.Errorf("zero interval: want ErrInvalidConfiguration, got %v", err)
	}
	if _, err := c.Checkpoints(1000, -25, "{distance}"); !errors.Is(err, config.ErrInvalidConfiguration) {
		t.Errorf("negative interval: want ErrInvalidConfiguration, got %v", err)
	}
}

// --- Labels ---

func TestFormatLabel(t *testing.T) {
	c := mustCalculator(t, 2*time.Minute, 100, 25)
	tests := []struct {
		format   string
		distance float64
		want     string
	}{
		{"{distance} meters", 250, "250 meters"},
		{"{laps} laps", 250, "10 laps"},
		{"{hundreds} hundred", 300, "3 hundred"},
		{"{distance}", 62.5, "62.5"},
		{"{laps} laps, {distance} meters", 100, "4 laps, 100 meters"},
		{"no tokens", 500, "no tokens"},
	}
	for _, tt := range tests {
		if got := c.FormatLabel(tt.format, tt.distance); got != tt.want {
			t.Errorf("FormatLabel(%q, %g) = %q, want %q", tt.format, tt.distance, got, tt.want)
		}
	}
}

func TestCheckpointLabelsUseSeriesFormat(t *testing.T) {
	c := mustCalculator(t, 2*time.Minute, 100, 50)
	cps, err := c.Checkpoints(200, 100, "{laps} laps done")
	if err != nil {
		t.Fatalf("Checkpoints: %v", err)
	}
	want := []string{"2 laps done", "4 laps done"}
	for i, cp := range cps {
		if cp.Label != want[i] {
			t.Errorf("checkpoint %d label = %q, want %q", i, cp.Label, want[i])
		}
	}
}
