// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/tinywav/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec    oggReader
	closer io.Closer
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil

	return c.Close()
}

// ReadFrames decodes straight into dst. oggvorbis counts values, not frames,
// and always returns a multiple of the channel count.
func (s *source) ReadFrames(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	ch := s.dec.Channels()
	if len(dst)%ch != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	n, err := s.dec.Read(dst)

	return n / ch, err
}

// Opener decodes Ogg Vorbis files for an audio.Registry.
type Opener struct{}

func (Opener) Open(path string) (audio.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	dec, err := oggvorbis.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", ErrNotOggVorbisFile, err)
	}
	if dec.Channels() < 1 {
		f.Close()
		return nil, ErrNotOggVorbisFile
	}

	return &source{dec: dec, closer: f}, nil
}
