// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNilSession          = errors.New("nil wav session")
	ErrNilPath             = errors.New("empty path")
	ErrNilBuffer           = errors.New("nil sample buffer")
	ErrShortBuffer         = errors.New("sample buffer too small for frame count")
	ErrInvalidChannels     = errors.New("channel count must be at least 1")
	ErrInvalidSampleRate   = errors.New("sample rate must be at least 1")
	ErrInvalidFrameCount   = errors.New("frame count must not be negative")
	ErrUnknownSampleFormat = errors.New("unknown sample format")
	ErrUnknownLayout       = errors.New("unknown channel layout")

	ErrNotOpen     = errors.New("wav session is not open")
	ErrAlreadyOpen = errors.New("wav session is already open")
	ErrWrongMode   = errors.New("operation not valid for session mode")

	ErrShortHeader          = errors.New("wav header shorter than 44 bytes")
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrDataChunkNotFound    = errors.New("data chunk not found")
	ErrDataTooLarge         = errors.New("data chunk exceeds 4 GiB")
)
