// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"

	"github.com/go-audio/riff"
)

// HeaderSize is the length of the canonical RIFF/WAVE header this package writes.
const HeaderSize = 44

// Byte offsets of the canonical header fields.
const (
	offChunkID       = 0
	offChunkSize     = 4
	offFormat        = 8
	offSubchunk1ID   = 12
	offSubchunk1Size = 16
	offAudioFormat   = 20
	offNumChannels   = 22
	offSampleRate    = 24
	offByteRate      = 28
	offBlockAlign    = 32
	offBitsPerSample = 34
	offSubchunk2ID   = 36
	offSubchunk2Size = 40
)

// riffSizeBias is the distance from the end of the ChunkSize field to the
// first data byte when no extra chunks are present.
const riffSizeBias = HeaderSize - 8

// pcmFmtSize is the size of a plain PCM "fmt " chunk body.
const pcmFmtSize = 16

// WAVE format tags.
const (
	AudioFormatPCM   uint16 = 1
	AudioFormatFloat uint16 = 3
)

// Header mirrors the canonical 44-byte RIFF/WAVE header.
// Tags hold the ASCII bytes in file order.
type Header struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

// newHeader builds the header for a fresh file. Both size fields are left
// at zero until the writer is closed.
func newHeader(channels, sampleRate int, format SampleFormat) Header {
	bps := format.BytesPerSample()

	return Header{
		ChunkID:       riff.RiffID,
		Format:        riff.WavFormatID,
		Subchunk1ID:   riff.FmtID,
		Subchunk1Size: pcmFmtSize,
		AudioFormat:   format.AudioFormat(),
		NumChannels:   uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * channels * bps),
		BlockAlign:    uint16(channels * bps),
		BitsPerSample: uint16(format.BitsPerSample()),
		Subchunk2ID:   riff.DataFormatID,
	}
}

// MarshalBinary encodes h field by field into HeaderSize bytes.
func (h Header) MarshalBinary() ([]byte, error) {
	b := make([]byte, HeaderSize)
	h.put(b)

	return b, nil
}

func (h Header) put(b []byte) {
	le := binary.LittleEndian

	copy(b[offChunkID:], h.ChunkID[:])
	le.PutUint32(b[offChunkSize:], h.ChunkSize)
	copy(b[offFormat:], h.Format[:])
	copy(b[offSubchunk1ID:], h.Subchunk1ID[:])
	le.PutUint32(b[offSubchunk1Size:], h.Subchunk1Size)
	le.PutUint16(b[offAudioFormat:], h.AudioFormat)
	le.PutUint16(b[offNumChannels:], h.NumChannels)
	le.PutUint32(b[offSampleRate:], h.SampleRate)
	le.PutUint32(b[offByteRate:], h.ByteRate)
	le.PutUint16(b[offBlockAlign:], h.BlockAlign)
	le.PutUint16(b[offBitsPerSample:], h.BitsPerSample)
	copy(b[offSubchunk2ID:], h.Subchunk2ID[:])
	le.PutUint32(b[offSubchunk2Size:], h.Subchunk2Size)
}

// UnmarshalBinary decodes the first HeaderSize bytes of b. It does not
// validate tags.
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderSize {
		return fmt.Errorf("%w: got %d bytes", ErrShortHeader, len(b))
	}

	le := binary.LittleEndian

	copy(h.ChunkID[:], b[offChunkID:])
	h.ChunkSize = le.Uint32(b[offChunkSize:])
	copy(h.Format[:], b[offFormat:])
	copy(h.Subchunk1ID[:], b[offSubchunk1ID:])
	h.Subchunk1Size = le.Uint32(b[offSubchunk1Size:])
	h.AudioFormat = le.Uint16(b[offAudioFormat:])
	h.NumChannels = le.Uint16(b[offNumChannels:])
	h.SampleRate = le.Uint32(b[offSampleRate:])
	h.ByteRate = le.Uint32(b[offByteRate:])
	h.BlockAlign = le.Uint16(b[offBlockAlign:])
	h.BitsPerSample = le.Uint16(b[offBitsPerSample:])
	copy(h.Subchunk2ID[:], b[offSubchunk2ID:])
	h.Subchunk2Size = le.Uint32(b[offSubchunk2Size:])

	return nil
}

// validate checks the three fixed tags.
func (h Header) validate() error {
	if h.ChunkID != riff.RiffID || h.Format != riff.WavFormatID {
		return ErrNotWavFile
	}

	if h.Subchunk1ID != riff.FmtID {
		return ErrUnsupportedWavLayout
	}

	return nil
}
