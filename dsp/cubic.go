// SPDX-License-Identifier: EPL-2.0

package dsp

// Cubic performs Catmull-Rom interpolation between y1 and y2.
// x is the fractional position between y1 and y2 (0 <= x <= 1);
// y0 and y3 are the neighbouring samples.
func Cubic(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}

// SampleAt reads frames at a fractional index with cubic interpolation.
// Indices outside the slice read as silence, so a region fades in and out of
// its source edges instead of repeating the edge sample.
func SampleAt(frames []float32, pos float64) float32 {
	if len(frames) == 0 || pos < -1 || pos > float64(len(frames)) {
		return 0
	}

	i := int(pos)
	if pos < 0 {
		i = -1
	}
	x := float32(pos - float64(i))

	at := func(k int) float32 {
		if k < 0 || k >= len(frames) {
			return 0
		}
		return frames[k]
	}

	return Cubic(at(i-1), at(i), at(i+1), at(i+2), x)
}
