// SPDX-License-Identifier: EPL-2.0

package vorbis_test

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/ik5/tinywav/formats/vorbis"
)

// ExampleOpener_Open reads an Ogg Vorbis file block by block.
func ExampleOpener_Open() {
	src, err := vorbis.Opener{}.Open("input.ogg")
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	buf := make([]float32, src.Channels()*1024)

	var total int
	for {
		n, err := src.ReadFrames(buf)
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Fatal(err)
		}
	}

	fmt.Printf("%d frames at %d Hz\n", total, src.SampleRate())
}
