package tts

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// --- Error classification ---

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		status    int
		auth      bool
		quota     bool
		retryable bool
	}{
		{0, false, false, true},
		{400, false, false, false},
		{401, true, false, false},
		{403, true, false, false},
		{429, false, true, false},
		{500, false, false, true},
		{503, false, false, true},
	}
	for _, tt := range tests {
		e := &Error{Provider: "test", Status: tt.status, Message: "boom"}
		if e.IsAuth() != tt.auth {
			t.Errorf("status %d: IsAuth = %v, want %v", tt.status, e.IsAuth(), tt.auth)
		}
		if e.IsQuota() != tt.quota {
			t.Errorf("status %d: IsQuota = %v, want %v", tt.status, e.IsQuota(), tt.quota)
		}
		if e.Retryable() != tt.retryable {
			t.Errorf("status %d: Retryable = %v, want %v", tt.status, e.Retryable(), tt.retryable)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	e := &Error{Provider: "openai", Status: 429, Message: "rate limited"}
	msg := e.Error()
	for _, want := range []string{"openai", "429", "rate limited"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}

	transport := &Error{Provider: "elevenlabs", Message: "connection refused"}
	if strings.Contains(transport.Error(), "status") {
		t.Errorf("transport error %q should not mention a status", transport.Error())
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("tcp timeout")
	e := &Error{Provider: "test", Message: "boom", cause: cause}
	if !errors.Is(e, cause) {
		t.Error("Error does not unwrap to its cause")
	}
}

func TestIsUnavailable(t *testing.T) {
	e := &Error{Provider: "test", Status: 503, Message: "down"}
	if !IsUnavailable(e) {
		t.Error("IsUnavailable(Error) = false")
	}
	if !IsUnavailable(fmt.Errorf("synthesize: %w", e)) {
		t.Error("IsUnavailable should see through wrapping")
	}
	if IsUnavailable(errors.New("unrelated")) {
		t.Error("IsUnavailable matched an unrelated error")
	}
	if IsUnavailable(nil) {
		t.Error("IsUnavailable(nil) = true")
	}
}

// --- Voice keys ---

func TestVoiceKeysDistinguishConfigurations(t *testing.T) {
	a := NewOpenAI("k", "tts-1", "nova", 1.0)
	b := NewOpenAI("k", "tts-1", "onyx", 1.0)
	c := NewOpenAI("k", "tts-1-hd", "nova", 1.0)
	d := NewOpenAI("k", "tts-1", "nova", 1.25)
	keys := map[string]bool{}
	for _, s := range []*OpenAI{a, b, c, d} {
		keys[s.VoiceKey()] = true
	}
	if len(keys) != 4 {
		t.Errorf("got %d distinct keys, want 4", len(keys))
	}

	e := NewElevenLabs("k", "voice1", "")
	f := NewElevenLabs("k", "voice2", "")
	if e.VoiceKey() == f.VoiceKey() {
		t.Error("different voice ids share a key")
	}
}

func TestOpenAIDefaults(t *testing.T) {
	s := NewOpenAI("k", "", "", 0)
	key := s.VoiceKey()
	for _, want := range []string{"tts-1", "nova", "1"} {
		if !strings.Contains(key, want) {
			t.Errorf("key %q missing default %q", key, want)
		}
	}
}
