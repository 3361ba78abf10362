// Package clipcache resolves announcement text to rendered voice clips,
// synthesizing each distinct phrase at most once per generation run.
package clipcache

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/pacelabs/paceforge/internal/audio"
	"github.com/pacelabs/paceforge/internal/tts"
)

// DefaultWorkers bounds concurrent synthesis calls during Prewarm.
const DefaultWorkers = 10

// Cache memoizes synthesized clips for one run, keyed by (voice, text).
// Clips are resampled to the composition rate before they are stored, so
// everything handed out is ready to mix.
type Cache struct {
	synth   tts.Synthesizer
	rate    int
	workers int

	group singleflight.Group

	mu    sync.RWMutex
	clips map[string]*audio.Clip
}

// Option configures a Cache.
type Option func(*Cache)

// WithWorkers sets the Prewarm concurrency limit.
func WithWorkers(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.workers = n
		}
	}
}

// New creates a cache for the given synthesizer and composition sample rate.
func New(synth tts.Synthesizer, sampleRate int, opts ...Option) *Cache {
	c := &Cache{
		synth:   synth,
		rate:    sampleRate,
		workers: DefaultWorkers,
		clips:   make(map[string]*audio.Clip),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Len returns the number of distinct clips rendered so far.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.clips)
}

// Resolve returns the clip for text, synthesizing it on first request.
// Concurrent resolves of the same key share a single in-flight synthesis
// call; later requesters receive the same stored clip.
func (c *Cache) Resolve(ctx context.Context, text string) (*audio.Clip, error) {
	key := c.synth.VoiceKey() + "|" + text

	c.mu.RLock()
	clip, ok := c.clips[key]
	c.mu.RUnlock()
	if ok {
		return clip, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A previous flight may have stored the clip between our read
		// and the Do call.
		c.mu.RLock()
		clip, ok := c.clips[key]
		c.mu.RUnlock()
		if ok {
			return clip, nil
		}

		raw, err := c.synth.Synthesize(ctx, text)
		if err != nil {
			return nil, err
		}
		clip, err = audio.Resample(raw, c.rate)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.clips[key] = clip
		c.mu.Unlock()
		return clip, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*audio.Clip), nil
}

// Prewarm synthesizes all distinct texts with a bounded worker pool.
// The first synthesis failure cancels the remaining work and is returned:
// a track with missing announcements must not be produced.
func (c *Cache) Prewarm(ctx context.Context, texts []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	seen := make(map[string]struct{}, len(texts))
	for _, text := range texts {
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}

		g.Go(func() error {
			_, err := c.Resolve(ctx, text)
			return err
		})
	}
	return g.Wait()
}
