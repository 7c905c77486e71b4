// SPDX-License-Identifier: EPL-2.0

// Package aiff opens AIFF files as audio sources.
//
// Decoding is done by github.com/go-audio/aiff. Integer samples of 8, 16, 24
// or 32 bits are scaled by 2^(bits-1)-1, so 16-bit input maps onto float32
// exactly the way the WAV engine maps int16.
//
//	src, err := aiff.Opener{}.Open("input.aiff")
//	if err != nil {
//	    // Handle error
//	}
//	defer src.Close()
//
// Encoding AIFF is not supported.
package aiff
