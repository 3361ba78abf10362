package audio

import (
	"math"
	"time"
)

const fadeDuration = 5 * time.Millisecond

// Tone renders a sine wave clip at the given frequency and volume (0-1).
// A short linear fade is applied at both ends so clicks don't pop.
func Tone(sampleRate int, frequency float64, duration time.Duration, volume float64) *Clip {
	n := int(duration.Seconds() * float64(sampleRate))
	samples := make([]int16, n)

	fade := int(fadeDuration.Seconds() * float64(sampleRate))
	if fade*2 > n {
		fade = 0
	}

	for i := range samples {
		t := float64(i) / float64(sampleRate)
		v := math.Sin(2*math.Pi*frequency*t) * volume
		if fade > 0 {
			if i < fade {
				v *= float64(i) / float64(fade)
			} else if i >= n-fade {
				v *= float64(n-1-i) / float64(fade)
			}
		}
		samples[i] = int16(v * 32767)
	}

	return &Clip{Samples: samples, SampleRate: sampleRate}
}
