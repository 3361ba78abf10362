// Package pace derives checkpoint timestamps from a target pace.
package pace

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pacelabs/paceforge/internal/config"
)

// Checkpoint is a distance at which an announcement should play, and the
// moment (relative to activity start) a swimmer on target pace reaches it.
type Checkpoint struct {
	Distance float64
	Time     time.Duration
	Label    string
}

// Calculator turns pace parameters into checkpoint sequences.
type Calculator struct {
	timePerSegment  time.Duration
	segmentDistance float64
	lapLength       float64
}

// NewCalculator validates the pace parameters shared by all series.
func NewCalculator(timePerSegment time.Duration, segmentDistance, lapLength float64) (*Calculator, error) {
	if timePerSegment <= 0 {
		return nil, fmt.Errorf("%w: time per segment must be positive (got %v)",
			config.ErrInvalidConfiguration, timePerSegment)
	}
	if segmentDistance <= 0 {
		return nil, fmt.Errorf("%w: segment distance must be positive (got %g)",
			config.ErrInvalidConfiguration, segmentDistance)
	}
	if lapLength <= 0 {
		return nil, fmt.Errorf("%w: lap length must be positive (got %g)",
			config.ErrInvalidConfiguration, lapLength)
	}
	return &Calculator{
		timePerSegment:  timePerSegment,
		segmentDistance: segmentDistance,
		lapLength:       lapLength,
	}, nil
}

// PerUnit returns the time needed to cover one unit of distance.
func (c *Calculator) PerUnit() time.Duration {
	return time.Duration(float64(c.timePerSegment) / c.segmentDistance)
}

// ActivityDuration returns the time needed to cover the total distance.
func (c *Calculator) ActivityDuration(totalDistance float64) time.Duration {
	return time.Duration(totalDistance * float64(c.PerUnit()))
}

// Checkpoints returns one checkpoint per full multiple of announceEvery up
// to totalDistance, labelled with the series format. Timestamps are strictly
// increasing. When totalDistance is not an exact multiple the final partial
// interval produces no checkpoint: only completed intervals are announced.
// announceEvery larger than totalDistance yields an empty (valid) sequence.
func (c *Calculator) Checkpoints(totalDistance, announceEvery float64, format string) ([]Checkpoint, error) {
	if totalDistance <= 0 {
		return nil, fmt.Errorf("%w: total distance must be positive (got %g)",
			config.ErrInvalidConfiguration, totalDistance)
	}
	if announceEvery <= 0 {
		return nil, fmt.Errorf("%w: announcement interval must be positive (got %g)",
			config.ErrInvalidConfiguration, announceEvery)
	}

	perUnit := c.PerUnit()
	count := int(totalDistance / announceEvery)

	checkpoints := make([]Checkpoint, 0, count)
	for k := 1; k <= count; k++ {
		d := float64(k) * announceEvery
		checkpoints = append(checkpoints, Checkpoint{
			Distance: d,
			Time:     time.Duration(d * float64(perUnit)),
			Label:    c.FormatLabel(format, d),
		})
	}
	return checkpoints, nil
}

// FormatLabel resolves the closed token set of announcement formats:
// {distance}, {laps} (distance over the lap length) and {hundreds}.
func (c *Calculator) FormatLabel(format string, distance float64) string {
	return strings.NewReplacer(
		"{distance}", formatNumber(distance),
		"{laps}", strconv.Itoa(int(distance/c.lapLength)),
		"{hundreds}", formatNumber(distance/100),
	).Replace(format)
}

// formatNumber prints whole values without a decimal point.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
