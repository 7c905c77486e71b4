// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/tinywav/audio"
	"github.com/ik5/tinywav/utils"
)

// go-mp3 always decodes to 16-bit little-endian stereo.
const (
	channels   = 2
	frameBytes = channels * 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec    mp3Reader
	closer io.Closer
	buf    []byte
	carry  int // bytes of a partial frame kept at the head of buf
}

func newSource(dec mp3Reader, closer io.Closer) *source {
	return &source{
		dec:    dec,
		closer: closer,
		buf:    make([]byte, 8192),
	}
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }

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
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	need := len(dst) / channels * frameBytes
	if cap(s.buf) < need {
		buf := make([]byte, need)
		copy(buf, s.buf[:s.carry])
		s.buf = buf
	}
	s.buf = s.buf[:need]

	n, err := s.dec.Read(s.buf[s.carry:])
	total := s.carry + n
	frames := total / frameBytes

	for i := range frames * channels {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
		dst[i] = utils.Int16ToFloat32(v)
	}

	s.carry = copy(s.buf, s.buf[frames*frameBytes:total])

	if frames == 0 && err == nil {
		return 0, nil
	}

	return frames, err
}

// Opener decodes MP3 files for an audio.Registry.
type Opener struct{}

func (Opener) Open(path string) (audio.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	dec, err := gomp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return newSource(dec, f), nil
}
