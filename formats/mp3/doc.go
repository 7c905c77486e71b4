// SPDX-License-Identifier: EPL-2.0

// Package mp3 opens MP3 files as audio sources.
//
// Decoding is done by github.com/hajimehoshi/go-mp3, which always produces
// 16-bit stereo. Samples are normalized to float32 with the same scale the
// WAV engine uses for int16, so an MP3 transcoded to an int16 WAV keeps its
// original sample values.
//
//	src, err := mp3.Opener{}.Open("input.mp3")
//	if err != nil {
//	    // Handle error
//	}
//	defer src.Close()
//
//	buf := make([]float32, 2*1024)
//	frames, err := src.ReadFrames(buf)
//
// Output is always two channels. Wrap the source in audio.NewDownmix for mono.
// Encoding MP3 is not supported.
package mp3
