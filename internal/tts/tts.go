// Package tts is the synthesis capability boundary: it turns announcement
// text into PCM clips via an external provider.
package tts

import (
	"context"
	"errors"
	"fmt"

	"github.com/pacelabs/paceforge/internal/audio"
)

// Synthesizer renders speech for one fixed voice configuration. A missing
// announcement makes a pacing track unsafe to follow, so implementations
// must return an error instead of substituting silence.
type Synthesizer interface {
	// Synthesize renders text to a mono PCM clip at the provider's native rate.
	Synthesize(ctx context.Context, text string) (*audio.Clip, error)

	// VoiceKey identifies the voice configuration for cache keying; two
	// synthesizers producing identical audio for identical text share a key.
	VoiceKey() string
}

// Error is a synthesis failure: the external TTS capability errored, timed
// out, or rejected the request. Generation aborts on any of these.
type Error struct {
	Provider string
	Status   int // HTTP status, 0 for transport failures
	Message  string
	cause    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: synthesis unavailable (status %d): %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: synthesis unavailable: %s", e.Provider, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// IsAuth reports an authentication or authorization failure.
func (e *Error) IsAuth() bool { return e.Status == 401 || e.Status == 403 }

// IsQuota reports a rate limit or quota failure.
func (e *Error) IsQuota() bool { return e.Status == 429 }

// Retryable reports whether a retry could plausibly succeed. No retry is
// performed by default; retrying auth or quota errors would only mask
// misconfiguration.
func (e *Error) Retryable() bool { return e.Status == 0 || e.Status >= 500 }

// IsUnavailable reports whether err is a synthesis failure.
func IsUnavailable(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
