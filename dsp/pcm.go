// SPDX-License-Identifier: EPL-2.0

package dsp

// FloatToPCM clamps x to [-1, 1] and scales it to a signed integer of
// bitDepth bits. The positive peak maps to the largest positive value
// to avoid overflow.
func FloatToPCM(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	peak := float64(int64(1)<<(bitDepth-1)) - 1
	return int(float64(x) * peak)
}

// PCMToFloat normalizes a signed PCM value of bitDepth bits into [-1, 1).
func PCMToFloat(v int, bitDepth int) float32 {
	return float32(float64(v) / float64(int64(1)<<(bitDepth-1)))
}
