// SPDX-License-Identifier: EPL-2.0

package tinywav

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/tinywav/audio"
	"github.com/ik5/tinywav/formats/aiff"
	"github.com/ik5/tinywav/formats/mp3"
	"github.com/ik5/tinywav/formats/vorbis"
	"github.com/ik5/tinywav/formats/wav"
)

// DefaultBlockFrames is the block size Transcode uses when given zero.
const DefaultBlockFrames = 512

// Transcode streams every frame of src into a new WAV file at path, encoded
// as format with the source's channel count and sample rate. It reads and
// writes blockFrames frames at a time and returns the number of frames
// written.
//
// The output is finalized even when reading or writing fails part way, so
// the file on disk always describes the frames it holds. src is not closed.
func Transcode(src audio.Source, path string, format wav.SampleFormat, blockFrames int, opts ...wav.Option) (int64, error) {
	if blockFrames <= 0 {
		blockFrames = DefaultBlockFrames
	}

	channels := src.Channels()
	w, err := wav.Create(path, channels, src.SampleRate(), format, wav.Interleaved, opts...)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", path, err)
	}

	buf := make([]float32, blockFrames*channels)

	var copyErr error
	for {
		n, rerr := src.ReadFrames(buf)
		if n > 0 {
			if _, err := w.WriteFrames(wav.Flat(buf[:n*channels]), n); err != nil {
				copyErr = fmt.Errorf("writing %s: %w", path, err)
				break
			}
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			copyErr = fmt.Errorf("reading source: %w", rerr)
			break
		}
	}

	frames := w.TotalFrames()
	if err := w.CloseWrite(); err != nil && copyErr == nil {
		copyErr = fmt.Errorf("finalizing %s: %w", path, err)
	}

	return frames, copyErr
}

// NewRegistry returns a registry with every format this module can read.
// WAV inputs go through the engine with opts applied.
func NewRegistry(opts ...wav.Option) *audio.Registry {
	r := audio.NewRegistry()

	r.Register("wav", wav.Opener{Options: opts})
	r.Register("mp3", mp3.Opener{})
	r.Register("ogg", vorbis.Opener{})
	r.Register("aif", aiff.Opener{})
	r.Register("aiff", aiff.Opener{})

	return r
}
