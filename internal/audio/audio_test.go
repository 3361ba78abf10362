package audio

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// --- Clip ---

func TestClipDuration(t *testing.T) {
	c := &Clip{Samples: make([]int16, 44100), SampleRate: 44100}
	if got := c.Duration(); got != time.Second {
		t.Errorf("Duration = %v, want 1s", got)
	}
	empty := &Clip{SampleRate: 44100}
	if got := empty.Duration(); got != 0 {
		t.Errorf("empty clip Duration = %v, want 0", got)
	}
}

// --- PCM byte conversion ---

func TestSampleByteRoundTrip(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768, 12345, -12345}
	got := BytesToSamples(SamplesToBytes(samples))
	if diff := cmp.Diff(samples, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBytesToSamplesDropsOddByte(t *testing.T) {
	got := BytesToSamples([]byte{0x01, 0x00, 0xff})
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("got %v, want [1]", got)
	}
}

func TestSamplesToBytesLittleEndian(t *testing.T) {
	got := SamplesToBytes([]int16{0x0102})
	if got[0] != 0x02 || got[1] != 0x01 {
		t.Errorf("got % x, want 02 01", got)
	}
}
