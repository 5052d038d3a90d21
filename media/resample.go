// SPDX-License-Identifier: EPL-2.0

package media

import "github.com/ik5/blockrender/dsp"

// lowPassAlpha is the coefficient of the one-pole filter applied before
// downsampling.
const lowPassAlpha = 0.5

// Resample returns the tape converted to rate with cubic interpolation.
// Downsampling runs a simple one-pole low-pass over the source first.
// A tape already at rate is returned as is.
func (t *Tape) Resample(rate int) (*Tape, error) {
	if rate <= 0 {
		return nil, ErrInvalidTape
	}
	if rate == t.sampleRate {
		return t, nil
	}

	ratio := float64(t.sampleRate) / float64(rate) // source frames per output frame
	frames := t.Frames() * rate / t.sampleRate

	out := make([][]float32, len(t.channels))
	for c, src := range t.channels {
		if ratio > 1 {
			src = lowPass(src)
		}

		dst := make([]float32, frames)
		for i := range dst {
			dst[i] = dsp.SampleAt(src, float64(i)*ratio)
		}
		out[c] = dst
	}

	return &Tape{sampleRate: rate, channels: out}, nil
}

// lowPass filters src into a new slice: y[n] = a*x[n] + (1-a)*y[n-1].
// The state starts at the first sample to avoid a warm-up transient.
func lowPass(src []float32) []float32 {
	if len(src) == 0 {
		return nil
	}

	dst := make([]float32, len(src))
	state := src[0]
	for i, x := range src {
		state = lowPassAlpha*x + (1-lowPassAlpha)*state
		dst[i] = state
	}
	return dst
}
