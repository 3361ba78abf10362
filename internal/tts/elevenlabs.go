package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pacelabs/paceforge/internal/audio"
)

const (
	elevenLabsBaseURL = "https://api.elevenlabs.io"
	elevenLabsPCMRate = 44100
)

// ElevenLabs synthesizes speech through the ElevenLabs REST API, requesting
// pcm_44100 output so clips usually land on the composition rate directly.
type ElevenLabs struct {
	apiKey  string
	voiceID string
	model   string
	baseURL string
	http    *http.Client
}

// NewElevenLabs creates an ElevenLabs synthesizer. Model defaults to
// eleven_flash_v2_5 when empty.
func NewElevenLabs(apiKey, voiceID, model string) *ElevenLabs {
	if model == "" {
		model = "eleven_flash_v2_5"
	}
	return &ElevenLabs{
		apiKey:  apiKey,
		voiceID: voiceID,
		model:   model,
		baseURL: elevenLabsBaseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// VoiceKey implements Synthesizer.
func (e *ElevenLabs) VoiceKey() string {
	return fmt.Sprintf("elevenlabs/%s/%s", e.voiceID, e.model)
}

// Synthesize renders text to a 44.1 kHz mono clip.
func (e *ElevenLabs) Synthesize(ctx context.Context, text string) (*audio.Clip, error) {
	if e.apiKey == "" || e.voiceID == "" {
		return nil, &Error{Provider: "elevenlabs", Message: "api key or voice id missing"}
	}

	u, err := url.Parse(e.baseURL + "/v1/text-to-speech/" + e.voiceID)
	if err != nil {
		return nil, &Error{Provider: "elevenlabs", Message: err.Error(), cause: err}
	}
	q := u.Query()
	q.Set("output_format", "pcm_44100")
	u.RawQuery = q.Encode()

	body, err := json.Marshal(map[string]any{
		"text":     text,
		"model_id": e.model,
	})
	if err != nil {
		return nil, &Error{Provider: "elevenlabs", Message: err.Error(), cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Provider: "elevenlabs", Message: err.Error(), cause: err}
	}
	req.Header.Set("xi-api-key", e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.http.Do(req)
	if err != nil {
		return nil, &Error{Provider: "elevenlabs", Message: err.Error(), cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &Error{
			Provider: "elevenlabs",
			Status:   resp.StatusCode,
			Message:  string(msg),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Provider: "elevenlabs", Message: "read audio: " + err.Error(), cause: err}
	}
	if len(data) < 2 {
		return nil, &Error{Provider: "elevenlabs", Message: fmt.Sprintf("empty audio for %q", text)}
	}

	return &audio.Clip{
		Samples:    audio.BytesToSamples(data),
		SampleRate: elevenLabsPCMRate,
	}, nil
}
