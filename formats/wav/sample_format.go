// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/ik5/tinywav/utils"
)

// SampleFormat is the on-disk sample encoding. Its value is the number of
// bytes per sample.
type SampleFormat int

const (
	Int16   SampleFormat = 2
	Float32 SampleFormat = 4
)

func (f SampleFormat) BytesPerSample() int { return int(f) }
func (f SampleFormat) BitsPerSample() int  { return 8 * int(f) }

// AudioFormat returns the WAVE format tag written for f.
func (f SampleFormat) AudioFormat() uint16 {
	if f == Float32 {
		return AudioFormatFloat
	}

	return AudioFormatPCM
}

func (f SampleFormat) valid() bool { return f == Int16 || f == Float32 }

func (f SampleFormat) String() string {
	switch f {
	case Int16:
		return "int16"
	case Float32:
		return "float32"
	default:
		return fmt.Sprintf("SampleFormat(%d)", int(f))
	}
}

// ParseSampleFormat accepts "int16" or "float32" (also "i16", "f32", "pcm16", "float").
func ParseSampleFormat(s string) (SampleFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int16", "i16", "pcm16", "s16":
		return Int16, nil
	case "float32", "f32", "float":
		return Float32, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSampleFormat, s)
	}
}

// sampleFormatFor infers the encoding from the fmt chunk. ok is false for
// combinations this package cannot decode natively.
func sampleFormatFor(bitsPerSample, audioFormat uint16) (SampleFormat, bool) {
	switch {
	case bitsPerSample == 32 && audioFormat == AudioFormatFloat:
		return Float32, true
	case bitsPerSample == 16 && audioFormat == AudioFormatPCM:
		return Int16, true
	default:
		return Float32, false
	}
}

// decode converts len(dst) little-endian samples from src into float32.
func (f SampleFormat) decode(dst []float32, src []byte) {
	le := binary.LittleEndian

	switch f {
	case Int16:
		for i := range dst {
			dst[i] = utils.Int16ToFloat32(int16(le.Uint16(src[2*i:])))
		}
	case Float32:
		for i := range dst {
			dst[i] = math.Float32frombits(le.Uint32(src[4*i:]))
		}
	}
}

// encode converts src into little-endian samples in dst.
func (f SampleFormat) encode(dst []byte, src []float32) {
	le := binary.LittleEndian

	switch f {
	case Int16:
		for i, x := range src {
			le.PutUint16(dst[2*i:], uint16(utils.Float32ToInt16(x)))
		}
	case Float32:
		for i, x := range src {
			le.PutUint32(dst[4*i:], math.Float32bits(x))
		}
	}
}
