// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes uncompressed PCM WAV files frame by frame.
//
// A File is one session over one file: either a writer created with Create
// (or OpenWrite) or a reader created with Open (or OpenRead). Samples always
// travel through memory as float32, and the session converts them to and
// from the on-disk encoding.
//
// # Sample Formats
//
//   - Int16: 16-bit signed PCM (format tag 1), scaled by math.MaxInt16
//   - Float32: 32-bit IEEE float (format tag 3), stored as is
//
// Files with any other bit depth are still opened. They are decoded as
// float32 on a best-effort basis, a warning is logged and Degraded reports
// true.
//
// # Channel Layouts
//
// Callers choose how their buffers are arranged:
//
//   - Interleaved: one buffer, [LRLRLRLR]
//   - Inline: one buffer, [LLLLRRRR]
//   - Split: one buffer per channel, [[LLLL],[RRRR]]
//
// Flat wraps a single buffer for the first two.
//
// # Writing
//
//	w, err := wav.Create("out.wav", 2, 48000, wav.Float32, wav.Split)
//	if err != nil {
//	    // Handle error
//	}
//	left := make([]float32, 512)
//	right := make([]float32, 512)
//	n, err := w.WriteFrames(wav.Buffers{left, right}, 512)
//	err = w.CloseWrite() // patches the RIFF and data sizes
//
// # Reading
//
//	r, err := wav.Open("in.wav", wav.Interleaved)
//	buf := make([]float32, r.Channels()*512)
//	for {
//	    n, err := r.ReadFrames(wav.Flat(buf), 512)
//	    if err != nil || n == 0 {
//	        break
//	    }
//	    // use buf[:n*r.Channels()]
//	}
//	r.CloseRead()
//
// ReadFrames returns 0 with a nil error at the end of the data chunk. Short
// reads and writes are normal and callers should loop.
//
// # File Format
//
// Writers always produce the canonical 44-byte header followed by
// interleaved little-endian samples. Readers accept extra chunks (LIST,
// fact, ...) between "fmt " and "data" and skip them.
package wav
