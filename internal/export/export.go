// Package export encodes a composed timeline to a distributable audio file.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pacelabs/paceforge/internal/audio"
)

// Encode renders the timeline in the named format: "wav" (lossless),
// "mp3" (lossy, via ffmpeg) or "ogg" (lossy, Opus).
func Encode(t *audio.Timeline, format string) ([]byte, error) {
	switch format {
	case "wav":
		return encodeWAV(t), nil
	case "mp3":
		return encodeMP3(t)
	case "ogg":
		return encodeOgg(t)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// WriteFile encodes the timeline and writes it atomically: the encoded bytes
// land in a temp file that is renamed into place, so a failed run never
// leaves a partial output behind.
func WriteFile(path string, t *audio.Timeline, format string) error {
	data, err := Encode(t, format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".paceforge-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
