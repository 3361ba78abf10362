package export

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"gopkg.in/hraban/opus.v2"

	"github.com/pacelabs/paceforge/internal/audio"
)

const (
	// Opus only encodes at a handful of rates; the timeline is resampled
	// to 48 kHz before encoding regardless of the composition rate.
	opusRate      = 48000
	opusFrameSize = 960 // samples per 20ms frame at 48kHz
	opusBitrate   = 96000

	pageHeaderSize             = 27
	pageHeaderTypeContinuation = 0x00
	pageHeaderTypeBOS          = 0x02
	pageHeaderTypeEOS          = 0x04

	// Fixed stream serial keeps the output byte-identical across runs.
	streamSerial = 0x70616365
)

// encodeOgg encodes the timeline as Opus in an Ogg container. The container
// is written directly: an OpusHead/OpusTags header pair followed by one
// page per 20ms packet and a closing EOS page.
func encodeOgg(t *audio.Timeline) ([]byte, error) {
	clip, err := audio.Resample(&audio.Clip{Samples: t.Samples, SampleRate: t.SampleRate}, opusRate)
	if err != nil {
		return nil, fmt.Errorf("resample for opus: %w", err)
	}

	enc, err := opus.NewEncoder(opusRate, audio.Channels, opus.AppAudio)
	if err != nil {
		return nil, fmt.Errorf("create opus encoder: %w", err)
	}
	if err := enc.SetBitrate(opusBitrate); err != nil {
		return nil, fmt.Errorf("set opus bitrate: %w", err)
	}

	var out bytes.Buffer
	w := newOggWriter(&out)
	if err := w.writeOpusHeaders(opusRate, audio.Channels); err != nil {
		return nil, err
	}

	frame := make([]int16, opusFrameSize)
	packet := make([]byte, 4000)
	samples := clip.Samples

	for off := 0; off < len(samples); off += opusFrameSize {
		end := off + opusFrameSize
		if end > len(samples) {
			// Final short frame padded with silence.
			for i := range frame {
				frame[i] = 0
			}
			end = len(samples)
		}
		copy(frame, samples[off:end])

		n, err := enc.Encode(frame, packet)
		if err != nil {
			return nil, fmt.Errorf("opus encode: %w", err)
		}
		if err := w.writePacket(packet[:n], opusFrameSize); err != nil {
			return nil, err
		}
	}

	if err := w.close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// oggWriter writes a single Opus stream into an Ogg container.
type oggWriter struct {
	w         *bytes.Buffer
	granule   uint64
	pageIndex uint32
	crcTable  *[256]uint32
}

func newOggWriter(w *bytes.Buffer) *oggWriter {
	return &oggWriter{w: w, crcTable: oggChecksumTable()}
}

// writeOpusHeaders emits the OpusHead identification header (BOS page) and
// the OpusTags comment header, per RFC 7845.
func (o *oggWriter) writeOpusHeaders(sampleRate, channels int) error {
	id := make([]byte, 19)
	copy(id, "OpusHead")
	id[8] = 1              // version
	id[9] = byte(channels) // channel count
	binary.LittleEndian.PutUint16(id[10:], 0) // pre-skip
	binary.LittleEndian.PutUint32(id[12:], uint32(sampleRate))
	binary.LittleEndian.PutUint16(id[16:], 0) // output gain
	id[18] = 0                                // channel mapping family

	if err := o.writePage(id, pageHeaderTypeBOS, 0); err != nil {
		return err
	}

	vendor := "paceforge"
	tags := make([]byte, 8+4+len(vendor)+4)
	copy(tags, "OpusTags")
	binary.LittleEndian.PutUint32(tags[8:], uint32(len(vendor)))
	copy(tags[12:], vendor)
	binary.LittleEndian.PutUint32(tags[12+len(vendor):], 0) // no user comments

	return o.writePage(tags, pageHeaderTypeContinuation, 0)
}

// writePacket writes one Opus packet as its own page, advancing the granule
// position by the packet's sample count (at 48 kHz, per RFC 7845).
func (o *oggWriter) writePacket(packet []byte, samples int) error {
	o.granule += uint64(samples)
	return o.writePage(packet, pageHeaderTypeContinuation, o.granule)
}

// close terminates the stream with an empty EOS page.
func (o *oggWriter) close() error {
	return o.writePage(nil, pageHeaderTypeEOS, o.granule)
}

func (o *oggWriter) writePage(payload []byte, headerType uint8, granule uint64) error {
	nSegments := 1
	if len(payload) > 0 {
		nSegments = len(payload)/255 + 1
	}

	page := make([]byte, pageHeaderSize+nSegments+len(payload))
	copy(page, "OggS")
	page[4] = 0 // version
	page[5] = headerType
	binary.LittleEndian.PutUint64(page[6:], granule)
	binary.LittleEndian.PutUint32(page[14:], streamSerial)
	binary.LittleEndian.PutUint32(page[18:], o.pageIndex)
	// page[22:26] is the checksum, filled in below
	page[26] = byte(nSegments)

	// Segment lacing: full 255-byte segments then the remainder.
	if len(payload) > 0 {
		for i := 0; i < nSegments-1; i++ {
			page[pageHeaderSize+i] = 255
		}
		page[pageHeaderSize+nSegments-1] = byte(len(payload) % 255)
	} else {
		page[pageHeaderSize] = 0
	}
	copy(page[pageHeaderSize+nSegments:], payload)

	var checksum uint32
	for _, b := range page {
		checksum = (checksum << 8) ^ o.crcTable[byte(checksum>>24)^b]
	}
	binary.LittleEndian.PutUint32(page[22:], checksum)

	o.pageIndex++
	_, err := o.w.Write(page)
	return err
}

// oggChecksumTable builds the CRC lookup table for Ogg's non-reflected
// CRC-32 with polynomial 0x04c11db7 and zero initial value.
func oggChecksumTable() *[256]uint32 {
	var table [256]uint32
	const poly = 0x04c11db7

	for i := range table {
		r := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if r&0x80000000 != 0 {
				r = (r << 1) ^ poly
			} else {
				r <<= 1
			}
			table[i] = r
		}
	}
	return &table
}
