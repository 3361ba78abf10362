package audio

import (
	"encoding/binary"
	"time"
)

const (
	// DefaultSampleRate is used when the config doesn't pin one.
	DefaultSampleRate = 44100
	// Channels is fixed: pace tracks are mono end to end.
	Channels = 1
	// BitDepth of all PCM buffers (int16 samples).
	BitDepth = 16
)

// Clip is an immutable rendered piece of audio: a spoken announcement or a
// metronome click. Samples are mono int16 at the clip's sample rate.
type Clip struct {
	Samples    []int16
	SampleRate int
}

// Duration returns the clip length.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.SampleRate)
}

// MixEvent schedules one clip at a start time on the composed timeline.
// Gain is a linear multiplier in [0,1].
type MixEvent struct {
	Start time.Duration
	Clip  *Clip
	Gain  float64
}

// SamplesToBytes converts int16 samples to little-endian bytes.
func SamplesToBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}

// BytesToSamples converts little-endian PCM bytes to int16 samples.
// A trailing odd byte is dropped.
func BytesToSamples(b []byte) []int16 {
	samples := make([]int16, len(b)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(b[i*2 : i*2+2]))
	}
	return samples
}
