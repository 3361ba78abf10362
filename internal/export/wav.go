package export

import (
	"encoding/binary"

	"github.com/pacelabs/paceforge/internal/audio"
)

const wavHeaderSize = 44

// encodeWAV writes a canonical RIFF/WAVE container around the raw PCM:
// 16-bit little-endian mono, no extensions.
func encodeWAV(t *audio.Timeline) []byte {
	pcm := audio.SamplesToBytes(t.Samples)
	buf := make([]byte, wavHeaderSize+len(pcm))

	byteRate := t.SampleRate * audio.Channels * audio.BitDepth / 8
	blockAlign := audio.Channels * audio.BitDepth / 8

	copy(buf[0:], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:], uint32(36+len(pcm)))
	copy(buf[8:], "WAVE")

	copy(buf[12:], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(buf[20:], 1)  // PCM format tag
	binary.LittleEndian.PutUint16(buf[22:], audio.Channels)
	binary.LittleEndian.PutUint32(buf[24:], uint32(t.SampleRate))
	binary.LittleEndian.PutUint32(buf[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:], audio.BitDepth)

	copy(buf[36:], "data")
	binary.LittleEndian.PutUint32(buf[40:], uint32(len(pcm)))
	copy(buf[wavHeaderSize:], pcm)

	return buf
}
