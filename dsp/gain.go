// SPDX-License-Identifier: EPL-2.0

package dsp

// ScaleInto writes src * gain into dst. dst and src must have the same length.
func ScaleInto(dst, src []float32, gain float32) {
	copy(dst, src)

	n := len(dst)
	i := 0
	// Unrolled by four; most block sizes are multiples of 4.
	for ; i+4 <= n; i += 4 {
		dst[i] *= gain
		dst[i+1] *= gain
		dst[i+2] *= gain
		dst[i+3] *= gain
	}
	for ; i < n; i++ {
		dst[i] *= gain
	}
}

// AddInto accumulates src into dst sample by sample.
func AddInto(dst, src []float32) {
	for i := range min(len(dst), len(src)) {
		dst[i] += src[i]
	}
}

// Zero silences buf.
func Zero(buf []float32) {
	clear(buf)
}
