package audio

import (
	"errors"
	"fmt"
	"time"
)

// ErrEventOutOfBounds reports a mix event that would write past the end of
// the composed buffer. It indicates a defect upstream (pace or metronome
// math), never a user error, so composition aborts instead of truncating.
var ErrEventOutOfBounds = errors.New("mix event out of bounds")

// Timeline is the composed output buffer: mono int16 at a fixed sample rate.
type Timeline struct {
	Samples    []int16
	SampleRate int
}

// Duration returns the total length of the timeline.
func (t *Timeline) Duration() time.Duration {
	return time.Duration(len(t.Samples)) * time.Second / time.Duration(t.SampleRate)
}

// Compose overlays all events onto a silent buffer of the given total
// duration. Events sum additively in float32 and the result is hard-limited
// to full scale before conversion back to int16, so coincident events can
// never wrap around. Given identical inputs the output is byte-identical:
// events are applied in slice order and all math is order-stable.
func Compose(sampleRate int, total time.Duration, events []MixEvent) (*Timeline, error) {
	n := int(total.Seconds() * float64(sampleRate))
	buf := make([]float32, n)

	for _, ev := range events {
		if ev.Clip == nil || len(ev.Clip.Samples) == 0 {
			continue
		}
		if ev.Clip.SampleRate != sampleRate {
			return nil, fmt.Errorf("clip sample rate %d does not match timeline rate %d",
				ev.Clip.SampleRate, sampleRate)
		}
		start := int(ev.Start.Seconds() * float64(sampleRate))
		if start < 0 || start+len(ev.Clip.Samples) > n {
			return nil, fmt.Errorf("%w: event at %v (%v clip) exceeds %v buffer",
				ErrEventOutOfBounds, ev.Start, ev.Clip.Duration(), total)
		}
		gain := float32(ev.Gain)
		for i, s := range ev.Clip.Samples {
			buf[start+i] += sampleToFloat(s) * gain
		}
	}

	return &Timeline{Samples: limit(buf), SampleRate: sampleRate}, nil
}

// limit converts the float32 mix buffer to int16, clamping to full scale.
// This is the explicit post-mix safety step: overlapping events may sum
// past 1.0 and must not wrap when narrowed.
func limit(buf []float32) []int16 {
	out := make([]int16, len(buf))
	for i, t := range buf {
		if t > 1 {
			t = 1
		} else if t < -1 {
			t = -1
		}
		if t >= 0 {
			out[i] = int16(t * 32767)
		} else {
			out[i] = int16(t * 32768)
		}
	}
	return out
}

func sampleToFloat(s int16) float32 {
	f := float32(s)
	if f >= 0 {
		return f / 32767
	}
	return f / 32768
}
