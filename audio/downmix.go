// SPDX-License-Identifier: EPL-2.0

package audio

// Downmix averages every frame of its source into a single channel.
type Downmix struct {
	src Source
	tmp []float32
}

func NewDownmix(src Source) *Downmix {
	return &Downmix{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *Downmix) SampleRate() int { return m.src.SampleRate() }
func (m *Downmix) Channels() int   { return 1 }

func (m *Downmix) Close() error {
	return m.src.Close()
}

// ReadFrames fills dst with up to len(dst) mono frames.
func (m *Downmix) ReadFrames(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == 1 {
		return m.src.ReadFrames(dst)
	}

	samplesNeeded := len(dst) * channels

	// grow but never shrink
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float32, samplesNeeded)
	}
	m.tmp = m.tmp[:samplesNeeded]

	frames, err := m.src.ReadFrames(m.tmp)
	if frames == 0 {
		return 0, err
	}

	switch channels {
	case 2:
		for f := range frames {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}
	default:
		inv := float32(1.0) / float32(channels)
		for f := range frames {
			sum := float32(0)
			base := f * channels
			for c := range channels {
				sum += m.tmp[base+c]
			}
			dst[f] = sum * inv
		}
	}

	return frames, err
}
