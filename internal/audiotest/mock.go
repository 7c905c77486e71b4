// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// MockSource is a test helper that generates interleaved frames.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	waveform    func(frame int, channel int) float32

	// Closed reports whether Close has been called.
	Closed bool
}

// NewMockSource creates a new mock audio source producing totalFrames frames.
// waveform generates the sample value for a frame index and channel.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return 0.0
	})
}

// NewSineSource creates a mock source that generates a sine wave on every channel.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return value
	})
}

// NewRampSource creates a mock source whose samples are distinct per frame
// and channel, which makes layout mistakes visible.
func NewRampSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, Ramp(channels, totalFrames))
}

// Ramp returns the waveform used by NewRampSource. Values stay within (-1, 1).
func Ramp(channels, totalFrames int) func(frame int, channel int) float32 {
	span := float32(channels*totalFrames + 1)
	return func(frame int, channel int) float32 {
		v := float32(frame*channels+channel+1) / span
		if channel%2 == 1 {
			return -v
		}
		return v
	}
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }

func (m *MockSource) Close() error {
	m.Closed = true
	return nil
}

// Reset rewinds the generator so the same frames can be read again.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadFrames(dst []float32) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.totalFrames-m.generated)

	for frame := range framesToWrite {
		index := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(index, ch)
		}
	}

	m.generated += framesToWrite

	if m.generated >= m.totalFrames {
		return framesToWrite, io.EOF
	}

	return framesToWrite, nil
}
