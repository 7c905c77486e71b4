// SPDX-License-Identifier: EPL-2.0

package tinywav

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ik5/tinywav/audio"
	"github.com/ik5/tinywav/formats/wav"
	"github.com/ik5/tinywav/internal/audiotest"
)

// failingSource yields frames and then a read error.
type failingSource struct {
	*audiotest.MockSource
	err error
}

func (s *failingSource) ReadFrames(dst []float32) (int, error) {
	n, err := s.MockSource.ReadFrames(dst)
	if errors.Is(err, io.EOF) {
		return n, s.err
	}
	return n, err
}

func readAll(t *testing.T, path string) (*wav.File, []float32) {
	t.Helper()

	f, err := wav.Open(path, wav.Interleaved)
	if err != nil {
		t.Fatalf("wav.Open(%s) error = %v", path, err)
	}
	t.Cleanup(func() { f.Close() })

	var out []float32
	buf := make([]float32, 100*f.Channels())
	for {
		n, err := f.ReadFrames(wav.Flat(buf), 100)
		if err != nil {
			t.Fatalf("ReadFrames() error = %v", err)
		}
		if n == 0 {
			break
		}
		out = append(out, buf[:n*f.Channels()]...)
	}

	return f, out
}

func TestTranscode_Float32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		frames   int
		block    int
	}{
		{"mono default block", 1, 2000, 0},
		{"stereo odd block", 2, 1001, 37},
		{"surround", 6, 300, 512},
		{"empty", 2, 0, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "out.wav")
			src := audiotest.NewRampSource(48000, tt.channels, tt.frames)

			n, err := Transcode(src, path, wav.Float32, tt.block)
			if err != nil {
				t.Fatalf("Transcode() error = %v", err)
			}
			if n != int64(tt.frames) {
				t.Errorf("Transcode() = %d frames, want %d", n, tt.frames)
			}
			if src.Closed {
				t.Error("Transcode() closed the source")
			}

			f, got := readAll(t, path)
			if f.SampleRate() != 48000 || f.Channels() != tt.channels {
				t.Fatalf("format = %d Hz x %d", f.SampleRate(), f.Channels())
			}
			if f.FramesInHeader() != int64(tt.frames) {
				t.Errorf("FramesInHeader() = %d, want %d", f.FramesInHeader(), tt.frames)
			}

			ramp := audiotest.Ramp(tt.channels, tt.frames)
			for i, v := range got {
				if want := ramp(i/tt.channels, i%tt.channels); v != want {
					t.Fatalf("sample %d = %v, want %v", i, v, want)
				}
			}
		})
	}
}

func TestTranscode_Int16(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.wav")
	src := audiotest.NewSineSource(8000, 2, 800, 440)

	if _, err := Transcode(src, path, wav.Int16, 128); err != nil {
		t.Fatalf("Transcode() error = %v", err)
	}

	f, got := readAll(t, path)
	if f.SampleFormat() != wav.Int16 {
		t.Errorf("SampleFormat() = %v, want int16", f.SampleFormat())
	}

	src.Reset()
	want := make([]float32, 1600)
	src.ReadFrames(want)

	if len(got) != len(want) {
		t.Fatalf("read %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 2.0/math.MaxInt16 {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTranscode_SourceError(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken stream")
	path := filepath.Join(t.TempDir(), "out.wav")
	src := &failingSource{MockSource: audiotest.NewConstantSource(8000, 1, 100, 0.5), err: errBroken}

	n, err := Transcode(src, path, wav.Float32, 30)
	if !errors.Is(err, errBroken) {
		t.Fatalf("Transcode() error = %v, want %v", err, errBroken)
	}
	if n != 100 {
		t.Errorf("Transcode() = %d frames, want 100", n)
	}

	// The partial output is still a finalized file.
	f, got := readAll(t, path)
	if f.FramesInHeader() != 100 || len(got) != 100 {
		t.Errorf("header %d frames, read %d, want 100", f.FramesInHeader(), len(got))
	}
}

func TestTranscode_CreateErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name   string
		src    audio.Source
		format wav.SampleFormat
		want   error
	}{
		{"no channels", audiotest.NewSilentSource(8000, 0, 10), wav.Int16, wav.ErrInvalidChannels},
		{"no rate", audiotest.NewSilentSource(0, 1, 10), wav.Int16, wav.ErrInvalidSampleRate},
		{"bad format", audiotest.NewSilentSource(8000, 1, 10), wav.SampleFormat(3), wav.ErrUnknownSampleFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(dir, tt.name+".wav")
			if _, err := Transcode(tt.src, path, tt.format, 0); !errors.Is(err, tt.want) {
				t.Errorf("Transcode() error = %v, want %v", err, tt.want)
			}
			if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("output exists after failed create: %v", err)
			}
		})
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	want := []string{"aif", "aiff", "mp3", "ogg", "wav"}
	if got := reg.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}

	if _, err := reg.Open("in.flac"); !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("Open(flac) error = %v, want ErrUnknownFormat", err)
	}
}

func TestTranscode_WavToWav(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.wav")
	second := filepath.Join(dir, "second.WAV")

	if _, err := Transcode(audiotest.NewRampSource(22050, 3, 500), first, wav.Float32, 0); err != nil {
		t.Fatal(err)
	}

	src, err := NewRegistry().Open(first)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	n, err := Transcode(audio.NewDownmix(src), second, wav.Float32, 64)
	if err != nil {
		t.Fatalf("Transcode() error = %v", err)
	}
	if n != 500 {
		t.Errorf("Transcode() = %d frames, want 500", n)
	}

	f, got := readAll(t, second)
	if f.Channels() != 1 || f.SampleRate() != 22050 {
		t.Fatalf("format = %d Hz x %d, want 22050 Hz x 1", f.SampleRate(), f.Channels())
	}

	ramp := audiotest.Ramp(3, 500)
	for i, v := range got {
		want := (ramp(i, 0) + ramp(i, 1) + ramp(i, 2)) / 3
		if math.Abs(float64(v-want)) > 1e-6 {
			t.Fatalf("frame %d = %v, want %v", i, v, want)
		}
	}
}

func BenchmarkTranscode(b *testing.B) {
	dir := b.TempDir()

	b.ReportAllocs()
	for b.Loop() {
		src := audiotest.NewSineSource(48000, 2, 48000, 440)
		if _, err := Transcode(src, filepath.Join(dir, "bench.wav"), wav.Int16, 0); err != nil {
			b.Fatal(err)
		}
	}
}
