// SPDX-License-Identifier: EPL-2.0

package media

import "fmt"

// Tape is decoded audio held in memory, one slice per channel.
type Tape struct {
	sampleRate int
	channels   [][]float32
}

// NewTape builds a tape from planar channel data. All channels must have the
// same length.
func NewTape(sampleRate int, channels ...[]float32) (*Tape, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidTape, sampleRate)
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: no channels", ErrInvalidTape)
	}
	for c, data := range channels {
		if len(data) != len(channels[0]) {
			return nil, fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrInvalidTape, c, len(data), len(channels[0]))
		}
	}

	return &Tape{sampleRate: sampleRate, channels: channels}, nil
}

// FromInterleaved splits interleaved samples into a tape. A trailing partial
// frame is dropped.
func FromInterleaved(sampleRate, channels int, samples []float32) (*Tape, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidTape, channels)
	}

	frames := len(samples) / channels
	planar := make([][]float32, channels)
	for c := range planar {
		planar[c] = make([]float32, frames)
	}

	// Optimize: stereo is by far the most common layout
	if channels == 2 {
		for f := range frames {
			idx := f << 1
			planar[0][f] = samples[idx]
			planar[1][f] = samples[idx+1]
		}
	} else {
		for f := range frames {
			base := f * channels
			for c := range channels {
				planar[c][f] = samples[base+c]
			}
		}
	}

	return NewTape(sampleRate, planar...)
}

func (t *Tape) SampleRate() int { return t.sampleRate }
func (t *Tape) Channels() int   { return len(t.channels) }
func (t *Tape) Frames() int     { return len(t.channels[0]) }

// Channel returns the samples of channel c. The slice must not be modified.
func (t *Tape) Channel(c int) []float32 { return t.channels[c] }

// Duration in seconds.
func (t *Tape) Duration() float64 {
	return float64(t.Frames()) / float64(t.sampleRate)
}

// Downmix averages all channels into a mono tape. A mono tape is returned
// as is.
func (t *Tape) Downmix() *Tape {
	if len(t.channels) == 1 {
		return t
	}

	frames := t.Frames()
	mono := make([]float32, frames)
	inv := float32(1.0) / float32(len(t.channels))

	switch len(t.channels) {
	case 2: // Stereo (most common)
		l, r := t.channels[0], t.channels[1]
		for f := range frames {
			mono[f] = (l[f] + r[f]) * 0.5
		}
	default:
		for _, data := range t.channels {
			for f, v := range data {
				mono[f] += v
			}
		}
		for f := range mono {
			mono[f] *= inv
		}
	}

	return &Tape{sampleRate: t.sampleRate, channels: [][]float32{mono}}
}
