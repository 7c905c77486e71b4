// SPDX-License-Identifier: EPL-2.0

package wav

import (
	goaudio "github.com/go-audio/audio"
)

// Format describes the session in go-audio terms.
func (f *File) Format() *goaudio.Format {
	return &goaudio.Format{
		NumChannels: f.channels,
		SampleRate:  f.SampleRate(),
	}
}

// ReadBuffer fills buf.Data with interleaved frames, whatever the session
// layout. buf.Format is set when nil. It returns the number of frames read.
func (f *File) ReadBuffer(buf *goaudio.Float32Buffer) (int, error) {
	if f == nil {
		return 0, ErrNilSession
	}
	if buf == nil || buf.Data == nil {
		return 0, ErrNilBuffer
	}
	if f.channels < 1 {
		return 0, ErrNotOpen
	}

	if buf.Format == nil {
		buf.Format = f.Format()
	}
	buf.SourceBitDepth = f.format.BitsPerSample()

	return f.read(Flat(buf.Data), len(buf.Data)/f.channels, Interleaved)
}

// WriteBuffer appends the interleaved frames in buf.Data, whatever the
// session layout. Trailing samples that do not form a whole frame are ignored.
func (f *File) WriteBuffer(buf *goaudio.Float32Buffer) (int, error) {
	if f == nil {
		return 0, ErrNilSession
	}
	if buf == nil || buf.Data == nil {
		return 0, ErrNilBuffer
	}
	if f.channels < 1 {
		return 0, ErrNotOpen
	}

	return f.write(Flat(buf.Data), len(buf.Data)/f.channels, Interleaved)
}
