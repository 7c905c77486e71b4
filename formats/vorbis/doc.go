// SPDX-License-Identifier: EPL-2.0

// Package vorbis opens Ogg Vorbis files as audio sources.
//
// Decoding is done by github.com/jfreymuth/oggvorbis. Samples come out as
// interleaved float32 already clamped to [-1, 1], with the stream's own
// channel count and sample rate.
//
//	src, err := vorbis.Opener{}.Open("input.ogg")
//	if err != nil {
//	    // Handle error
//	}
//	defer src.Close()
//
//	buf := make([]float32, src.Channels()*1024)
//	frames, err := src.ReadFrames(buf)
//
// Encoding Vorbis is not supported.
package vorbis
