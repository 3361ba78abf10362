package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// ErrInvalidConfiguration covers every bad-parameter failure: pace, distance,
// interval, metronome and output settings. It is always detected before any
// synthesis work starts, so a bad config never produces a partial file.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Config is the validated settings document for one generation run.
type Config struct {
	Pool   PoolConfig   `yaml:"pool"`
	Target TargetConfig `yaml:"target"`
	Audio  AudioConfig  `yaml:"audio"`

	WarmupAnnouncements []WarmupAnnouncement `yaml:"warmup_announcements"`
	Announcements       []AnnouncementSeries `yaml:"announcements"`

	Metronome MetronomeConfig `yaml:"metronome"`
	Voice     VoiceConfig     `yaml:"voice"`
}

// PoolConfig describes the lap length used for the {laps} label token.
type PoolConfig struct {
	Length float64 `yaml:"length"`
}

// TargetConfig holds the pace goal. Pace accepts "m:ss" or bare seconds and
// is the target time per Segment units of distance.
type TargetConfig struct {
	Pace     string  `yaml:"pace"`
	Segment  float64 `yaml:"segment"`
	Distance float64 `yaml:"distance"`
}

// AudioConfig holds output timing and format settings. Warmup is the lead-in
// before the activity clock starts; Tail is silence kept after the last
// checkpoint so the final announcement never truncates.
type AudioConfig struct {
	SampleRate int     `yaml:"sample_rate"`
	Warmup     float64 `yaml:"warmup"` // seconds
	Tail       float64 `yaml:"tail"`   // seconds
	Format     string  `yaml:"format"`
	Output     string  `yaml:"output"`
}

// WarmupAnnouncement is spoken At seconds before the activity starts.
type WarmupAnnouncement struct {
	At   float64 `yaml:"at"`
	Text string  `yaml:"text"`
}

// AnnouncementSeries produces a spoken checkpoint every Interval distance
// units, with labels built from Format's tokens {distance}, {laps},
// {hundreds}.
type AnnouncementSeries struct {
	Interval float64 `yaml:"interval"`
	Format   string  `yaml:"format"`
}

// MetronomeConfig controls the click track.
type MetronomeConfig struct {
	Enabled         bool    `yaml:"enabled"`
	BPM             float64 `yaml:"bpm"`
	BeatsPerMeasure int     `yaml:"beats_per_measure"`
	AccentFirst     bool    `yaml:"accent_first"`
	Volume          float64 `yaml:"volume"`
	ClickFrequency  float64 `yaml:"click_frequency"`
	AccentFrequency float64 `yaml:"accent_frequency"`
	ClickDuration   float64 `yaml:"click_duration"` // seconds
}

// VoiceConfig selects and configures the TTS provider.
type VoiceConfig struct {
	Enabled    bool             `yaml:"enabled"`
	Volume     float64          `yaml:"volume"`
	Language   string           `yaml:"language"`
	Provider   string           `yaml:"provider"`
	OpenAI     OpenAIVoice      `yaml:"openai"`
	ElevenLabs ElevenLabsVoice  `yaml:"elevenlabs"`
}

// OpenAIVoice configures the OpenAI TTS provider.
type OpenAIVoice struct {
	APIKey string  `yaml:"api_key"`
	Model  string  `yaml:"model"`
	Voice  string  `yaml:"voice"`
	Speed  float64 `yaml:"speed"`
}

// ElevenLabsVoice configures the ElevenLabs TTS provider.
type ElevenLabsVoice struct {
	APIKey  string `yaml:"api_key"`
	VoiceID string `yaml:"voice_id"`
	Model   string `yaml:"model"`
}

// Load reads, defaults and validates a config document.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML config document, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Pool: PoolConfig{Length: 25},
		Target: TargetConfig{
			Segment: 100,
		},
		Audio: AudioConfig{
			SampleRate: 44100,
			Warmup:     15,
			Tail:       60,
			Format:     "mp3",
			Output:     "pace_track.mp3",
		},
		Metronome: MetronomeConfig{
			Enabled:         true,
			BPM:             60,
			BeatsPerMeasure: 4,
			AccentFirst:     true,
			Volume:          0.5,
			ClickFrequency:  800,
			AccentFrequency: 1200,
			ClickDuration:   0.05,
		},
		Voice: VoiceConfig{
			Enabled:  true,
			Volume:   0.8,
			Language: "en",
			Provider: "openai",
			OpenAI: OpenAIVoice{
				Model: "tts-1",
				Voice: "nova",
				Speed: 1.0,
			},
		},
	}
}

// PaceDuration parses the target pace into the time per Segment units.
func (c *Config) PaceDuration() (time.Duration, error) {
	return ParsePace(c.Target.Pace)
}

// ParsePace parses "m:ss" (e.g. "2:00") or a bare number of seconds.
func ParsePace(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: target.pace is required", ErrInvalidConfiguration)
	}
	if mins, secs, ok := strings.Cut(s, ":"); ok {
		m, err := strconv.Atoi(mins)
		if err != nil {
			return 0, fmt.Errorf("%w: bad pace %q", ErrInvalidConfiguration, s)
		}
		sec, err := strconv.Atoi(secs)
		if err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("%w: bad pace %q", ErrInvalidConfiguration, s)
		}
		return time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
	}
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad pace %q", ErrInvalidConfiguration, s)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

func (c *Config) validate() error {
	pace, err := c.PaceDuration()
	if err != nil {
		return err
	}
	if pace <= 0 {
		return fmt.Errorf("%w: target pace must be positive", ErrInvalidConfiguration)
	}
	if c.Target.Segment <= 0 {
		return fmt.Errorf("%w: target.segment must be positive (got %g)",
			ErrInvalidConfiguration, c.Target.Segment)
	}
	if c.Target.Distance <= 0 {
		return fmt.Errorf("%w: target.distance must be positive (got %g)",
			ErrInvalidConfiguration, c.Target.Distance)
	}
	if c.Pool.Length <= 0 {
		return fmt.Errorf("%w: pool.length must be positive (got %g)",
			ErrInvalidConfiguration, c.Pool.Length)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: audio.sample_rate must be positive (got %d)",
			ErrInvalidConfiguration, c.Audio.SampleRate)
	}
	if c.Audio.Warmup < 0 || c.Audio.Tail < 0 {
		return fmt.Errorf("%w: audio.warmup and audio.tail must not be negative",
			ErrInvalidConfiguration)
	}
	switch c.Audio.Format {
	case "wav", "mp3", "ogg":
	default:
		return fmt.Errorf("%w: audio.format must be wav, mp3 or ogg (got %q)",
			ErrInvalidConfiguration, c.Audio.Format)
	}
	if c.Audio.Output == "" {
		return fmt.Errorf("%w: audio.output must not be empty", ErrInvalidConfiguration)
	}
	for _, a := range c.Announcements {
		if a.Interval <= 0 {
			return fmt.Errorf("%w: announcement interval must be positive (got %g)",
				ErrInvalidConfiguration, a.Interval)
		}
		if a.Format == "" {
			return fmt.Errorf("%w: announcement format must not be empty",
				ErrInvalidConfiguration)
		}
	}
	for _, w := range c.WarmupAnnouncements {
		if w.At < 0 || w.At > c.Audio.Warmup {
			return fmt.Errorf("%w: warmup announcement at %gs is outside the %gs warmup",
				ErrInvalidConfiguration, w.At, c.Audio.Warmup)
		}
		if w.Text == "" {
			return fmt.Errorf("%w: warmup announcement text must not be empty",
				ErrInvalidConfiguration)
		}
	}
	if c.Metronome.Enabled {
		if c.Metronome.BPM <= 0 {
			return fmt.Errorf("%w: metronome.bpm must be positive (got %g)",
				ErrInvalidConfiguration, c.Metronome.BPM)
		}
		if c.Metronome.BeatsPerMeasure < 1 {
			return fmt.Errorf("%w: metronome.beats_per_measure must be at least 1 (got %d)",
				ErrInvalidConfiguration, c.Metronome.BeatsPerMeasure)
		}
		if c.Metronome.Volume < 0 || c.Metronome.Volume > 1 {
			return fmt.Errorf("%w: metronome.volume must be in [0,1] (got %g)",
				ErrInvalidConfiguration, c.Metronome.Volume)
		}
	}
	if c.Voice.Enabled {
		if c.Voice.Volume < 0 || c.Voice.Volume > 1 {
			return fmt.Errorf("%w: voice.volume must be in [0,1] (got %g)",
				ErrInvalidConfiguration, c.Voice.Volume)
		}
		switch c.Voice.Provider {
		case "openai", "elevenlabs":
		default:
			return fmt.Errorf("%w: voice.provider must be openai or elevenlabs (got %q)",
				ErrInvalidConfiguration, c.Voice.Provider)
		}
	}
	return nil
}
