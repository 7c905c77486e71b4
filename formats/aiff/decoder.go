// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/tinywav/audio"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement audio.Source
type source struct {
	dec      aiffReader
	closer   io.Closer
	format   *goaudio.Format
	bitDepth int
	scale    float32
	intBuf   *goaudio.IntBuffer
}

func newSource(dec aiffReader, closer io.Closer, bitDepth int) (*source, error) {
	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, bitDepth)
	}

	return &source{
		dec:      dec,
		closer:   closer,
		format:   format,
		bitDepth: bitDepth,
		// Full scale matches the int16 mapping of the WAV engine at 16 bits.
		scale: float32(int64(1)<<(bitDepth-1) - 1),
	}, nil
}

func (s *source) SampleRate() int { return s.format.SampleRate }
func (s *source) Channels() int   { return s.format.NumChannels }

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil

	return c.Close()
}

func (s *source) ReadFrames(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	ch := s.format.NumChannels
	if len(dst)%ch != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	frames := n / ch
	for i := range frames * ch {
		dst[i] = float32(s.intBuf.Data[i]) / s.scale
	}

	if frames == 0 && err == nil {
		return 0, io.EOF
	}

	return frames, err
}

// Opener decodes AIFF files for an audio.Registry.
type Opener struct{}

func (Opener) Open(path string) (audio.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(f)
	if !dec.IsValidFile() {
		f.Close()
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	src, err := newSource(dec, f, int(dec.BitDepth))
	if err != nil {
		f.Close()
		return nil, err
	}

	return src, nil
}
