// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/go-audio/riff"
)

type mode uint8

const (
	modeClosed mode = iota
	modeRead
	modeWrite
)

// streamingDataSize marks a data chunk whose length was unknown when written.
const streamingDataSize = math.MaxUint32

// File is a single read or write session over one WAV file. It owns its
// file handle exclusively and is not safe for concurrent use.
//
// The zero value is a closed session ready for OpenWrite or OpenRead.
type File struct {
	fh     *os.File
	mode   mode
	header Header
	logger *slog.Logger

	channels int
	format   SampleFormat
	layout   Layout

	frames         int64
	framesInHeader int64
	// dataLeft is the number of unread data chunk bytes, or -1 when the
	// chunk runs to EOF.
	dataLeft int64
	degraded bool

	raw     []byte
	scratch []float32
}

// Create opens path for writing and returns the new session.
func Create(path string, channels, sampleRate int, format SampleFormat, layout Layout, opts ...Option) (*File, error) {
	f := &File{}
	if err := f.OpenWrite(path, channels, sampleRate, format, layout, opts...); err != nil {
		return nil, err
	}

	return f, nil
}

// Open opens path for reading and returns the new session.
func Open(path string, layout Layout, opts ...Option) (*File, error) {
	f := &File{}
	if err := f.OpenRead(path, layout, opts...); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *File) reset(opts []Option) {
	*f = File{logger: slog.Default()}
	for _, opt := range opts {
		opt(f)
	}
}

// OpenWrite creates or truncates path and writes a complete header with
// both size fields zeroed. They are patched by CloseWrite.
func (f *File) OpenWrite(path string, channels, sampleRate int, format SampleFormat, layout Layout, opts ...Option) error {
	switch {
	case f == nil:
		return ErrNilSession
	case f.fh != nil:
		return ErrAlreadyOpen
	case path == "":
		return ErrNilPath
	case channels < 1 || channels > math.MaxUint16:
		return fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	case sampleRate < 1 || int64(sampleRate) > math.MaxUint32:
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	case !format.valid():
		return fmt.Errorf("%w: %d", ErrUnknownSampleFormat, int(format))
	case uint64(sampleRate)*uint64(channels*format.BytesPerSample()) > math.MaxUint32:
		return fmt.Errorf("%w: byte rate of %d Hz x %d channels overflows", ErrInvalidSampleRate, sampleRate, channels)
	case !layout.valid():
		return fmt.Errorf("%w: %d", ErrUnknownLayout, int(layout))
	}

	h := newHeader(channels, sampleRate, format)
	b := make([]byte, HeaderSize)
	h.put(b)

	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("opening %s for write: %w", path, err)
	}

	if _, err := fh.Write(b); err != nil {
		fh.Close()
		return fmt.Errorf("writing header: %w", err)
	}

	f.reset(opts)
	f.fh = fh
	f.mode = modeWrite
	f.header = h
	f.channels = channels
	f.format = format
	f.layout = layout
	f.framesInHeader = -1

	return nil
}

// OpenRead opens path, validates its header and positions the session at
// the first sample of the data chunk. Chunks between "fmt " and "data" are
// skipped. The handle is closed before any error is returned.
func (f *File) OpenRead(path string, layout Layout, opts ...Option) error {
	switch {
	case f == nil:
		return ErrNilSession
	case f.fh != nil:
		return ErrAlreadyOpen
	case path == "":
		return ErrNilPath
	case !layout.valid():
		return fmt.Errorf("%w: %d", ErrUnknownLayout, int(layout))
	}

	fh, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s for read: %w", path, err)
	}

	f.reset(opts)
	f.fh = fh
	f.mode = modeRead
	f.layout = layout

	if err := f.readHeader(); err != nil {
		f.release()
		return fmt.Errorf("reading %s: %w", path, err)
	}

	return nil
}

func (f *File) readHeader() error {
	b := make([]byte, HeaderSize)
	if _, err := io.ReadFull(f.fh, b); err != nil {
		return fmt.Errorf("%w: %w", ErrShortHeader, err)
	}

	var h Header
	if err := h.UnmarshalBinary(b); err != nil {
		return err
	}

	if err := h.validate(); err != nil {
		return err
	}

	if h.NumChannels < 1 {
		return ErrInvalidChannels
	}

	if err := f.seekData(&h); err != nil {
		return err
	}

	format, ok := sampleFormatFor(h.BitsPerSample, h.AudioFormat)
	if !ok {
		f.degraded = true
		f.logger.Warn("unsupported sample encoding, decoding as float32",
			"bits_per_sample", h.BitsPerSample,
			"audio_format", h.AudioFormat)
	}

	f.header = h
	f.channels = int(h.NumChannels)
	f.format = format
	f.framesInHeader = int64(h.Subchunk2Size) / int64(f.channels*format.BytesPerSample())

	f.dataLeft = int64(h.Subchunk2Size)
	if h.Subchunk2Size == streamingDataSize {
		f.dataLeft = -1
	}

	return nil
}

// seekData walks the chunk list until "data" and leaves the file offset at
// its first byte. h.Subchunk2ID/Subchunk2Size are replaced by the values
// read from the actual data chunk.
func (f *File) seekData(h *Header) error {
	info, err := f.fh.Stat()
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	size := info.Size()

	parser := riff.New(f.fh)
	id, chunkSize := h.Subchunk2ID, h.Subchunk2Size

	// start of the chunk following "fmt "
	pos := int64(offSubchunk1Size) + 4 + padded(h.Subchunk1Size)
	if pos != offSubchunk2ID {
		if id, chunkSize, err = f.chunkAt(parser, pos, size); err != nil {
			return err
		}
	}

	for id != riff.DataFormatID {
		f.logger.Debug("skipping chunk", "id", string(id[:]), "size", chunkSize, "offset", pos)

		pos += 8 + padded(chunkSize)
		if id, chunkSize, err = f.chunkAt(parser, pos, size); err != nil {
			return err
		}
	}

	h.Subchunk2ID = id
	h.Subchunk2Size = chunkSize

	return nil
}

// chunkAt reads the chunk tag and size at pos. A chunk header that would
// extend past EOF means no data chunk exists.
func (f *File) chunkAt(parser *riff.Parser, pos, fileSize int64) ([4]byte, uint32, error) {
	if pos+8 > fileSize {
		return [4]byte{}, 0, ErrDataChunkNotFound
	}

	if _, err := f.fh.Seek(pos, io.SeekStart); err != nil {
		return [4]byte{}, 0, fmt.Errorf("seeking to chunk: %w", err)
	}

	id, size, err := parser.IDnSize()
	if err != nil {
		return id, size, fmt.Errorf("%w: %w", ErrDataChunkNotFound, err)
	}

	return id, size, nil
}

// padded rounds a chunk body size up to RIFF word alignment.
func padded(size uint32) int64 {
	return int64(size) + int64(size&1)
}

// WriteFrames converts n frames from src, arranged per the session layout,
// and appends them to the data chunk. It returns the number of whole frames
// written; on a short write that count is returned with the error.
func (f *File) WriteFrames(src Buffers, n int) (int, error) {
	return f.write(src, n, f.layoutOrDefault())
}

// ReadFrames decodes up to n frames into dst, arranged per the session
// layout. It returns 0, nil at the end of the data chunk. A partial frame
// left at EOF is discarded. On an I/O error the whole frames read before it
// are decoded and counted, and their count is returned with the error.
func (f *File) ReadFrames(dst Buffers, n int) (int, error) {
	return f.read(dst, n, f.layoutOrDefault())
}

func (f *File) layoutOrDefault() Layout {
	if f == nil {
		return Interleaved
	}

	return f.layout
}

func (f *File) write(src Buffers, n int, layout Layout) (int, error) {
	switch {
	case f == nil:
		return 0, ErrNilSession
	case src == nil:
		return 0, ErrNilBuffer
	case n < 0:
		return 0, fmt.Errorf("%w: %d", ErrInvalidFrameCount, n)
	case f.fh == nil:
		return 0, ErrNotOpen
	case f.mode != modeWrite:
		return 0, fmt.Errorf("%w: write on read session", ErrWrongMode)
	}

	if n == 0 {
		return 0, nil
	}

	if err := layout.check(src, f.channels, n); err != nil {
		return 0, err
	}

	block := f.channels * f.format.BytesPerSample()
	if (f.frames+int64(n))*int64(block) > math.MaxUint32-riffSizeBias {
		return 0, ErrDataTooLarge
	}

	samples := n * f.channels

	var interleaved []float32
	if layout == Interleaved {
		interleaved = src[0][:samples]
	} else {
		interleaved = f.scratchBuf(samples)
		layout.gather(interleaved, src, f.channels, n)
	}

	raw := f.rawBuf(n * block)
	f.format.encode(raw, interleaved)

	written, err := f.fh.Write(raw)
	frames := written / block
	f.frames += int64(frames)

	if err != nil {
		return frames, fmt.Errorf("writing samples: %w", err)
	}

	return frames, nil
}

func (f *File) read(dst Buffers, n int, layout Layout) (int, error) {
	switch {
	case f == nil:
		return 0, ErrNilSession
	case dst == nil:
		return 0, ErrNilBuffer
	case n < 0:
		return 0, fmt.Errorf("%w: %d", ErrInvalidFrameCount, n)
	case f.fh == nil:
		return 0, ErrNotOpen
	case f.mode != modeRead:
		return 0, fmt.Errorf("%w: read on write session", ErrWrongMode)
	}

	if n == 0 {
		return 0, nil
	}

	if err := layout.check(dst, f.channels, n); err != nil {
		return 0, err
	}

	block := f.channels * f.format.BytesPerSample()
	want := int64(n) * int64(block)
	if f.dataLeft >= 0 && want > f.dataLeft {
		want = f.dataLeft - f.dataLeft%int64(block)
	}

	if want == 0 {
		return 0, nil
	}

	raw := f.rawBuf(int(want))

	got, err := io.ReadFull(f.fh, raw)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = nil
	}

	if f.dataLeft >= 0 {
		f.dataLeft -= int64(got)
	}

	frames := got / block
	samples := frames * f.channels

	if layout == Interleaved {
		f.format.decode(dst[0][:samples], raw[:frames*block])
	} else {
		decoded := f.scratchBuf(samples)
		f.format.decode(decoded, raw[:frames*block])
		layout.scatter(dst, decoded, f.channels, frames)
	}

	f.frames += int64(frames)

	if err != nil {
		return frames, fmt.Errorf("reading samples: %w", err)
	}

	return frames, nil
}

func (f *File) rawBuf(size int) []byte {
	if cap(f.raw) < size {
		f.raw = make([]byte, size)
	}

	return f.raw[:size]
}

func (f *File) scratchBuf(size int) []float32 {
	if cap(f.scratch) < size {
		f.scratch = make([]float32, size)
	}

	return f.scratch[:size]
}

// CloseWrite patches ChunkSize and Subchunk2Size with the final data length
// and closes the file. The handle is released even when patching fails.
func (f *File) CloseWrite() error {
	switch {
	case f == nil:
		return ErrNilSession
	case f.fh == nil:
		return ErrNotOpen
	case f.mode != modeWrite:
		return fmt.Errorf("%w: CloseWrite on read session", ErrWrongMode)
	}

	dataLen := uint32(f.frames * int64(f.channels*f.format.BytesPerSample()))
	f.header.ChunkSize = riffSizeBias + dataLen
	f.header.Subchunk2Size = dataLen

	var field [4]byte

	binary.LittleEndian.PutUint32(field[:], f.header.ChunkSize)
	_, err := f.fh.WriteAt(field[:], offChunkSize)

	if err == nil {
		binary.LittleEndian.PutUint32(field[:], f.header.Subchunk2Size)
		_, err = f.fh.WriteAt(field[:], offSubchunk2Size)
	}

	if cerr := f.release(); err == nil {
		err = cerr
	}

	if err != nil {
		return fmt.Errorf("finalizing header: %w", err)
	}

	return nil
}

// CloseRead closes a read session.
func (f *File) CloseRead() error {
	switch {
	case f == nil:
		return ErrNilSession
	case f.fh == nil:
		return ErrNotOpen
	case f.mode != modeRead:
		return fmt.Errorf("%w: CloseRead on write session", ErrWrongMode)
	}

	if err := f.release(); err != nil {
		return fmt.Errorf("closing wav: %w", err)
	}

	return nil
}

// Close calls CloseWrite or CloseRead depending on how the session was opened.
func (f *File) Close() error {
	if f == nil {
		return ErrNilSession
	}

	if f.mode == modeWrite {
		return f.CloseWrite()
	}

	return f.CloseRead()
}

// release closes the handle exactly once. Counters are kept so they can be
// inspected after close.
func (f *File) release() error {
	fh := f.fh
	f.fh = nil
	f.mode = modeClosed
	f.raw = nil
	f.scratch = nil

	return fh.Close()
}

// IsOpen reports whether the session holds a live file handle.
func (f *File) IsOpen() bool { return f != nil && f.fh != nil }

// Header returns the header as parsed (reader) or as last written (writer).
func (f *File) Header() Header { return f.header }

func (f *File) Channels() int              { return f.channels }
func (f *File) SampleRate() int            { return int(f.header.SampleRate) }
func (f *File) SampleFormat() SampleFormat { return f.format }
func (f *File) Layout() Layout             { return f.layout }

// TotalFrames is the number of frames read or written so far.
func (f *File) TotalFrames() int64 { return f.frames }

// FramesInHeader is the frame count declared by the data chunk of a read
// session, or -1 for a write session.
func (f *File) FramesInHeader() int64 { return f.framesInHeader }

// Degraded reports whether the file's encoding is not natively supported
// and samples are being decoded as float32 on a best-effort basis.
func (f *File) Degraded() bool { return f.degraded }
