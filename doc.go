// SPDX-License-Identifier: EPL-2.0

// Package tinywav reads and writes uncompressed PCM WAV files one block of
// frames at a time.
//
// The engine lives in formats/wav: a File session writes or reads 16-bit
// integer or 32-bit float samples, in interleaved, inline or split channel
// layouts, and patches the RIFF sizes when a writer is closed. This package
// adds the glue for using it as a converter.
//
// # Supported Inputs
//
//   - WAV (int16, float32, other depths best effort) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (8, 16, 24, 32-bit) via formats/aiff
//
// # Quick Start
//
//	reg := tinywav.NewRegistry()
//	src, err := reg.Open("input.mp3")
//	if err != nil {
//	    // Handle error
//	}
//	defer src.Close()
//
//	frames, err := tinywav.Transcode(src, "output.wav", wav.Int16, 0)
//
// Wrap the source with audio.NewDownmix to write mono.
//
// # Command Line
//
// cmd/wavconv wraps the same pipeline:
//
//	wavconv -format float32 -mono input.ogg output.wav
package tinywav
