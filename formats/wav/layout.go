// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"strings"
)

// Layout is the in-memory arrangement of caller sample buffers.
type Layout int

const (
	// Interleaved is frame-major, e.g. [LRLRLRLR].
	Interleaved Layout = iota
	// Inline groups each channel in one buffer, e.g. [LLLLRRRR].
	Inline
	// Split uses one buffer per channel, e.g. [[LLLL],[RRRR]].
	Split
)

func (l Layout) String() string {
	switch l {
	case Interleaved:
		return "interleaved"
	case Inline:
		return "inline"
	case Split:
		return "split"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "interleaved":
		return Interleaved, nil
	case "inline":
		return Inline, nil
	case "split":
		return Split, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLayout, s)
	}
}

func (l Layout) valid() bool { return l >= Interleaved && l <= Split }

// Buffers is caller-owned sample storage. Interleaved and Inline take a
// single buffer of channels*frames samples, Split takes one buffer of
// frames samples per channel.
type Buffers [][]float32

// Flat wraps one buffer for the Interleaved and Inline layouts.
func Flat(buf []float32) Buffers {
	if buf == nil {
		return nil
	}

	return Buffers{buf}
}

// index locates sample ch of frame within a block of frames frames.
func (l Layout) index(frame, ch, channels, frames int) (buf, off int) {
	switch l {
	case Inline:
		return 0, ch*frames + frame
	case Split:
		return ch, frame
	default:
		return 0, frame*channels + ch
	}
}

// check reports whether bufs can hold frames frames of channels channels.
func (l Layout) check(bufs Buffers, channels, frames int) error {
	if bufs == nil {
		return ErrNilBuffer
	}

	want, size := 1, channels*frames
	if l == Split {
		want, size = channels, frames
	}

	if len(bufs) < want {
		return fmt.Errorf("%w: %s layout needs %d buffers, got %d", ErrShortBuffer, l, want, len(bufs))
	}

	for i := range want {
		if bufs[i] == nil {
			return ErrNilBuffer
		}
		if len(bufs[i]) < size {
			return fmt.Errorf("%w: buffer %d holds %d samples, need %d", ErrShortBuffer, i, len(bufs[i]), size)
		}
	}

	return nil
}

// scatter copies frames interleaved frames from src into bufs.
func (l Layout) scatter(bufs Buffers, src []float32, channels, frames int) {
	if l == Interleaved {
		copy(bufs[0], src[:frames*channels])
		return
	}

	for f := range frames {
		for ch := range channels {
			b, off := l.index(f, ch, channels, frames)
			bufs[b][off] = src[f*channels+ch]
		}
	}
}

// gather is the inverse of scatter.
func (l Layout) gather(dst []float32, bufs Buffers, channels, frames int) {
	if l == Interleaved {
		copy(dst, bufs[0][:frames*channels])
		return
	}

	for f := range frames {
		for ch := range channels {
			b, off := l.index(f, ch, channels, frames)
			dst[f*channels+ch] = bufs[b][off]
		}
	}
}
