package audio

import (
	"testing"
	"time"
)

// --- Tone ---

func TestToneLength(t *testing.T) {
	c := Tone(44100, 800, 50*time.Millisecond, 0.5)
	if want := 2205; len(c.Samples) != want {
		t.Errorf("got %d samples, want %d", len(c.Samples), want)
	}
	if c.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", c.SampleRate)
	}
}

func TestToneStartsAndEndsNearSilence(t *testing.T) {
	c := Tone(44100, 800, 50*time.Millisecond, 1.0)
	if c.Samples[0] != 0 {
		t.Errorf("first sample = %d, want 0", c.Samples[0])
	}
	if last := c.Samples[len(c.Samples)-1]; last != 0 {
		t.Errorf("last sample = %d, want 0", last)
	}
}

func TestTonePeakScalesWithVolume(t *testing.T) {
	peak := func(c *Clip) int16 {
		var p int16
		for _, s := range c.Samples {
			if s > p {
				p = s
			}
			if -s > p {
				p = -s
			}
		}
		return p
	}
	full := peak(Tone(44100, 800, 50*time.Millisecond, 1.0))
	half := peak(Tone(44100, 800, 50*time.Millisecond, 0.5))
	if full < 30000 {
		t.Errorf("full-volume peak %d too low", full)
	}
	if half > full/2+200 || half < full/2-200 {
		t.Errorf("half-volume peak %d not near %d", half, full/2)
	}
}

func TestToneSkipsFadeWhenTooShort(t *testing.T) {
	// A clip shorter than two fade windows is rendered without fades
	// rather than fading over the whole clip.
	c := Tone(44100, 800, 5*time.Millisecond, 1.0)
	if len(c.Samples) == 0 {
		t.Fatal("empty clip")
	}
	var peak int16
	for _, s := range c.Samples {
		if s > peak {
			peak = s
		}
	}
	if peak < 30000 {
		t.Errorf("peak %d suggests fade was applied to a too-short clip", peak)
	}
}
