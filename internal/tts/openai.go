package tts

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pacelabs/paceforge/internal/audio"
)

// openaiPCMRate is the sample rate of the PCM response format.
const openaiPCMRate = 24000

// OpenAI synthesizes speech through the OpenAI audio/speech endpoint,
// requesting raw PCM so no decode step is needed.
type OpenAI struct {
	client openai.Client
	model  string
	voice  string
	speed  float64
}

// NewOpenAI creates an OpenAI synthesizer. Model defaults to tts-1 and voice
// to nova when empty.
func NewOpenAI(apiKey, model, voice string, speed float64) *OpenAI {
	if model == "" {
		model = "tts-1"
	}
	if voice == "" {
		voice = "nova"
	}
	if speed == 0 {
		speed = 1.0
	}
	return &OpenAI{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		voice:  voice,
		speed:  speed,
	}
}

// VoiceKey implements Synthesizer.
func (o *OpenAI) VoiceKey() string {
	return fmt.Sprintf("openai/%s/%s/%g", o.model, o.voice, o.speed)
}

// Synthesize renders text to a 24 kHz mono clip.
func (o *OpenAI) Synthesize(ctx context.Context, text string) (*audio.Clip, error) {
	res, err := o.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(o.model),
		Voice:          openai.AudioSpeechNewParamsVoice(o.voice),
		Input:          text,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatPCM,
		Speed:          openai.Float(o.speed),
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return nil, &Error{
				Provider: "openai",
				Status:   apierr.StatusCode,
				Message:  apierr.Message,
				cause:    err,
			}
		}
		return nil, &Error{Provider: "openai", Message: err.Error(), cause: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &Error{Provider: "openai", Message: "read audio: " + err.Error(), cause: err}
	}
	if len(data) < 2 {
		return nil, &Error{Provider: "openai", Message: fmt.Sprintf("empty audio for %q", text)}
	}

	return &audio.Clip{
		Samples:    audio.BytesToSamples(data),
		SampleRate: openaiPCMRate,
	}, nil
}
