package export

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/pacelabs/paceforge/internal/audio"
)

// encodeMP3 runs FFmpeg to encode raw PCM to MP3. FFmpeg reads the samples
// on stdin and emits the encoded file on stdout.
func encodeMP3(t *audio.Timeline) ([]byte, error) {
	cmd := exec.Command("ffmpeg",
		"-f", "s16le",
		"-ar", strconv.Itoa(t.SampleRate),
		"-ac", strconv.Itoa(audio.Channels),
		"-i", "pipe:0",
		"-codec:a", "libmp3lame",
		"-q:a", "4",
		"-f", "mp3",
		"-loglevel", "error",
		"pipe:1",
	)
	cmd.Stdin = bytes.NewReader(audio.SamplesToBytes(t.Samples))

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg mp3 encode: %w: %s", err, stderr.String())
	}
	return out, nil
}
