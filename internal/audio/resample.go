package audio

import (
	"fmt"

	resampling "github.com/tphakala/go-audio-resampling"
)

// Resample converts a clip to the target sample rate. Clips already at the
// target rate are returned as-is. Synthesized speech usually arrives at the
// provider's native rate (24 kHz for OpenAI PCM) and must match the
// composition rate before mixing; the Opus exporter also uses this for its
// mandatory 48 kHz path.
func Resample(clip *Clip, targetRate int) (*Clip, error) {
	if clip.SampleRate == targetRate {
		return clip, nil
	}

	rs, err := resampling.New(&resampling.Config{
		InputRate:  float64(clip.SampleRate),
		OutputRate: float64(targetRate),
		Channels:   Channels,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("create resampler %d -> %d: %w", clip.SampleRate, targetRate, err)
	}

	input := make([]float64, len(clip.Samples))
	for i, s := range clip.Samples {
		input[i] = float64(s) / 32768.0
	}

	output, err := rs.Process(input)
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}

	// Push some silence through to flush the filter tail, then trim to the
	// exact expected length so clip durations stay predictable.
	tail, err := rs.Process(make([]float64, 1024))
	if err == nil {
		output = append(output, tail...)
	}

	want := int(int64(len(clip.Samples)) * int64(targetRate) / int64(clip.SampleRate))
	if len(output) > want {
		output = output[:want]
	}
	for len(output) < want {
		output = append(output, 0)
	}

	samples := make([]int16, len(output))
	for i, v := range output {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		samples[i] = int16(v * 32767)
	}

	return &Clip{Samples: samples, SampleRate: targetRate}, nil
}
