// Package generate runs one end-to-end track generation: checkpoints,
// synthesis, metronome, mix and export.
package generate

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/pacelabs/paceforge/internal/audio"
	"github.com/pacelabs/paceforge/internal/clipcache"
	"github.com/pacelabs/paceforge/internal/config"
	"github.com/pacelabs/paceforge/internal/export"
	"github.com/pacelabs/paceforge/internal/log"
	"github.com/pacelabs/paceforge/internal/pace"
	"github.com/pacelabs/paceforge/internal/tts"
)

// Generator composes one pace track from a validated config.
type Generator struct {
	cfg    *config.Config
	synth  tts.Synthesizer
	output string
}

// Option configures a Generator.
type Option func(*Generator)

// WithSynthesizer overrides the provider chosen by the config. Tests use
// this to substitute a fake synthesizer.
func WithSynthesizer(s tts.Synthesizer) Option {
	return func(g *Generator) { g.synth = s }
}

// WithOutput overrides the configured output path.
func WithOutput(path string) Option {
	return func(g *Generator) { g.output = path }
}

// New creates a Generator for the config.
func New(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{cfg: cfg, output: cfg.Audio.Output}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Result summarizes a completed run.
type Result struct {
	Path          string
	Duration      time.Duration
	Checkpoints   int
	Beats         int
	DistinctClips int
}

// Run generates the track and writes the output file. Any configuration or
// synthesis failure aborts the run before a file is written.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	cfg := g.cfg

	paceDur, err := cfg.PaceDuration()
	if err != nil {
		return nil, err
	}
	calc, err := pace.NewCalculator(paceDur, cfg.Target.Segment, cfg.Pool.Length)
	if err != nil {
		return nil, err
	}

	warmup := seconds(cfg.Audio.Warmup)
	activity := calc.ActivityDuration(cfg.Target.Distance)
	tail := seconds(cfg.Audio.Tail)
	total := warmup + activity + tail
	rate := cfg.Audio.SampleRate

	log.S().Infof("Target: %g in %v (%v per %g), track %v (warmup %v, tail %v)",
		cfg.Target.Distance, activity, paceDur, cfg.Target.Segment, total, warmup, tail)

	// Checkpoint schedule, all series merged and time-ordered.
	var checkpoints []pace.Checkpoint
	for _, series := range cfg.Announcements {
		cps, err := calc.Checkpoints(cfg.Target.Distance, series.Interval, series.Format)
		if err != nil {
			return nil, err
		}
		if len(cps) == 0 {
			log.S().Warnf("Interval %g exceeds distance %g: no checkpoints for this series",
				series.Interval, cfg.Target.Distance)
		}
		checkpoints = append(checkpoints, cps...)
	}
	sort.SliceStable(checkpoints, func(i, j int) bool {
		return checkpoints[i].Time < checkpoints[j].Time
	})

	var events []audio.MixEvent

	// Metronome clicks. The accent cycle restarts when the activity starts,
	// so warmup and activity get separate patterns.
	beats := 0
	if cfg.Metronome.Enabled {
		m, err := audio.NewMetronome(rate, audio.MetronomeParams{
			BPM:             cfg.Metronome.BPM,
			BeatsPerMeasure: cfg.Metronome.BeatsPerMeasure,
			AccentFirst:     cfg.Metronome.AccentFirst,
			ClickFrequency:  cfg.Metronome.ClickFrequency,
			AccentFrequency: cfg.Metronome.AccentFrequency,
			ClickDuration:   seconds(cfg.Metronome.ClickDuration),
			Volume:          cfg.Metronome.Volume,
		})
		if err != nil {
			return nil, err
		}
		warmupBeats := m.Pattern(0, warmup)
		mainBeats := m.Pattern(warmup, activity+tail)
		beats = len(warmupBeats) + len(mainBeats)
		events = append(events, warmupBeats...)
		events = append(events, mainBeats...)
		log.S().Infof("Metronome: %g bpm, %d beats", cfg.Metronome.BPM, beats)
	}

	// Voice announcements.
	distinctClips := 0
	if cfg.Voice.Enabled {
		synth := g.synth
		if synth == nil {
			synth, err = newSynthesizer(cfg.Voice)
			if err != nil {
				return nil, err
			}
		}
		cache := clipcache.New(synth, rate)

		type placement struct {
			at   time.Duration
			text string
		}
		var spoken []placement
		for _, w := range cfg.WarmupAnnouncements {
			spoken = append(spoken, placement{at: warmup - seconds(w.At), text: w.Text})
		}
		for _, cp := range checkpoints {
			spoken = append(spoken, placement{at: warmup + cp.Time, text: cp.Label})
		}
		sort.SliceStable(spoken, func(i, j int) bool { return spoken[i].at < spoken[j].at })

		texts := make([]string, len(spoken))
		for i, p := range spoken {
			texts[i] = p.text
		}
		log.S().Infof("Synthesizing %d announcements", len(texts))
		if err := cache.Prewarm(ctx, texts); err != nil {
			return nil, err
		}
		distinctClips = cache.Len()
		log.S().Infof("Rendered %d distinct voice clips", distinctClips)

		for _, p := range spoken {
			clip, err := cache.Resolve(ctx, p.text)
			if err != nil {
				return nil, err
			}
			events = append(events, audio.MixEvent{
				Start: p.at,
				Clip:  clip,
				Gain:  cfg.Voice.Volume,
			})
		}
	}

	timeline, err := audio.Compose(rate, total, events)
	if err != nil {
		return nil, err
	}

	log.S().Infof("Exporting %s (%v) to %s", cfg.Audio.Format, timeline.Duration(), g.output)
	if err := export.WriteFile(g.output, timeline, cfg.Audio.Format); err != nil {
		return nil, err
	}

	return &Result{
		Path:          g.output,
		Duration:      timeline.Duration(),
		Checkpoints:   len(checkpoints),
		Beats:         beats,
		DistinctClips: distinctClips,
	}, nil
}

// newSynthesizer builds the provider selected by the voice config. API keys
// fall back to the conventional environment variables.
func newSynthesizer(v config.VoiceConfig) (tts.Synthesizer, error) {
	switch v.Provider {
	case "openai":
		key := v.OpenAI.APIKey
		if key == "" {
			key = os.Getenv("OPENAI_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("%w: openai api key missing (set voice.openai.api_key or OPENAI_API_KEY)",
				config.ErrInvalidConfiguration)
		}
		return tts.NewOpenAI(key, v.OpenAI.Model, v.OpenAI.Voice, v.OpenAI.Speed), nil
	case "elevenlabs":
		key := v.ElevenLabs.APIKey
		if key == "" {
			key = os.Getenv("ELEVENLABS_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("%w: elevenlabs api key missing (set voice.elevenlabs.api_key or ELEVENLABS_API_KEY)",
				config.ErrInvalidConfiguration)
		}
		return tts.NewElevenLabs(key, v.ElevenLabs.VoiceID, v.ElevenLabs.Model), nil
	default:
		return nil, fmt.Errorf("%w: unknown voice provider %q", config.ErrInvalidConfiguration, v.Provider)
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
