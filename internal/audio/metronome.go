package audio

import (
	"fmt"
	"time"

	"github.com/pacelabs/paceforge/internal/config"
)

// MetronomeParams describes the click track to generate.
type MetronomeParams struct {
	BPM             float64
	BeatsPerMeasure int
	AccentFirst     bool
	ClickFrequency  float64 // Hz, regular beat
	AccentFrequency float64 // Hz, first beat of each measure
	ClickDuration   time.Duration
	Volume          float64 // 0-1
}

// Metronome places pre-rendered click and accent clips on beat boundaries.
// The two tone clips are rendered once and shared by every beat event.
type Metronome struct {
	params MetronomeParams
	click  *Clip
	accent *Clip
}

// NewMetronome validates params and pre-renders the click and accent tones.
func NewMetronome(sampleRate int, params MetronomeParams) (*Metronome, error) {
	if params.BPM <= 0 {
		return nil, fmt.Errorf("%w: metronome bpm must be positive (got %g)",
			config.ErrInvalidConfiguration, params.BPM)
	}
	if params.BeatsPerMeasure < 1 {
		return nil, fmt.Errorf("%w: beats per measure must be at least 1 (got %d)",
			config.ErrInvalidConfiguration, params.BeatsPerMeasure)
	}
	if params.ClickDuration <= 0 {
		return nil, fmt.Errorf("%w: click duration must be positive (got %v)",
			config.ErrInvalidConfiguration, params.ClickDuration)
	}
	return &Metronome{
		params: params,
		click:  Tone(sampleRate, params.ClickFrequency, params.ClickDuration, params.Volume),
		accent: Tone(sampleRate, params.AccentFrequency, params.ClickDuration, params.Volume),
	}, nil
}

// Pattern generates beat events covering [offset, offset+total). The accent
// cycle starts fresh at the offset, so a warmup segment and the activity
// segment each begin on beat 0. A beat is placed only when the whole click
// fits before the segment end; a beat landing exactly at the end is excluded.
func (m *Metronome) Pattern(offset, total time.Duration) []MixEvent {
	interval := time.Duration(60 / m.params.BPM * float64(time.Second))

	var events []MixEvent
	beat := 0
	for t := time.Duration(0); t+m.params.ClickDuration <= total; t += interval {
		clip := m.click
		if m.params.AccentFirst && beat%m.params.BeatsPerMeasure == 0 {
			clip = m.accent
		}
		events = append(events, MixEvent{
			Start: offset + t,
			Clip:  clip,
			Gain:  1, // tone volume is baked into the rendered clip
		})
		beat++
	}
	return events
}
