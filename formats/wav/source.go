// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"io"

	"github.com/ik5/tinywav/audio"
)

// source adapts a read session to audio.Source.
type source struct {
	f *File
}

// Source exposes a read session as an audio.Source yielding interleaved
// frames. Closing the source closes the session.
func (f *File) Source() audio.Source {
	return &source{f: f}
}

func (s *source) SampleRate() int { return s.f.SampleRate() }
func (s *source) Channels() int   { return s.f.Channels() }
func (s *source) Close() error    { return s.f.CloseRead() }

func (s *source) ReadFrames(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%s.f.Channels() != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	n, err := s.f.read(Flat(dst), len(dst)/s.f.Channels(), Interleaved)
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, io.EOF
	}

	return n, nil
}

// Opener opens WAV files through the engine for an audio.Registry.
type Opener struct {
	Options []Option
}

func (o Opener) Open(path string) (audio.Source, error) {
	f, err := Open(path, Interleaved, o.Options...)
	if err != nil {
		return nil, err
	}

	return f.Source(), nil
}
