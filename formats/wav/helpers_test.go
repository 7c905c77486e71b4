// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

type testChunk struct {
	id   string
	body []byte
	// size overrides the declared size when non-zero.
	size uint32
}

// fmtChunk builds a "fmt " chunk body. extra bytes are appended to exercise
// fmt chunks longer than 16 bytes.
func fmtChunk(audioFormat, channels uint16, sampleRate uint32, bits uint16, extra ...byte) testChunk {
	buf := new(bytes.Buffer)
	blockAlign := channels * bits / 8

	binary.Write(buf, binary.LittleEndian, audioFormat)
	binary.Write(buf, binary.LittleEndian, channels)
	binary.Write(buf, binary.LittleEndian, sampleRate)
	binary.Write(buf, binary.LittleEndian, sampleRate*uint32(blockAlign))
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bits)
	buf.Write(extra)

	return testChunk{id: "fmt ", body: buf.Bytes()}
}

func int16Chunk(samples ...int16) testChunk {
	buf := new(bytes.Buffer)
	for _, s := range samples {
		binary.Write(buf, binary.LittleEndian, s)
	}

	return testChunk{id: "data", body: buf.Bytes()}
}

func float32Chunk(samples ...float32) testChunk {
	buf := new(bytes.Buffer)
	for _, s := range samples {
		binary.Write(buf, binary.LittleEndian, math.Float32bits(s))
	}

	return testChunk{id: "data", body: buf.Bytes()}
}

// riffFile assembles a RIFF/WAVE file from chunks, padding odd bodies.
func riffFile(chunks ...testChunk) []byte {
	body := new(bytes.Buffer)
	body.WriteString("WAVE")

	for _, c := range chunks {
		size := c.size
		if size == 0 {
			size = uint32(len(c.body))
		}

		body.WriteString(c.id)
		binary.Write(body, binary.LittleEndian, size)
		body.Write(c.body)
		if len(c.body)%2 == 1 {
			body.WriteByte(0)
		}
	}

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	return path
}

// toLayout rearranges an interleaved matrix into the buffers for layout.
func toLayout(interleaved []float32, layout Layout, channels, frames int) Buffers {
	switch layout {
	case Split:
		bufs := make(Buffers, channels)
		for ch := range channels {
			bufs[ch] = make([]float32, frames)
			for f := range frames {
				bufs[ch][f] = interleaved[f*channels+ch]
			}
		}
		return bufs
	case Inline:
		buf := make([]float32, channels*frames)
		for ch := range channels {
			for f := range frames {
				buf[ch*frames+f] = interleaved[f*channels+ch]
			}
		}
		return Buffers{buf}
	default:
		return Buffers{append([]float32(nil), interleaved...)}
	}
}

// fromLayout is the inverse of toLayout. frames is the block size used for
// Inline strides.
func fromLayout(bufs Buffers, layout Layout, channels, frames int) []float32 {
	out := make([]float32, channels*frames)

	for f := range frames {
		for ch := range channels {
			switch layout {
			case Split:
				out[f*channels+ch] = bufs[ch][f]
			case Inline:
				out[f*channels+ch] = bufs[0][ch*frames+f]
			default:
				out[f*channels+ch] = bufs[0][f*channels+ch]
			}
		}
	}

	return out
}

// newBuffers allocates empty buffers sized for layout.
func newBuffers(layout Layout, channels, frames int) Buffers {
	if layout == Split {
		bufs := make(Buffers, channels)
		for ch := range bufs {
			bufs[ch] = make([]float32, frames)
		}
		return bufs
	}

	return Buffers{make([]float32, channels*frames)}
}
