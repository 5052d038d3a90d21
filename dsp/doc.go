// SPDX-License-Identifier: EPL-2.0

// Package dsp contains the per-sample arithmetic shared by renderers and
// codecs.
//
// Samples are float32 in [-1.0, 1.0]. PCM conversion clamps to that range
// before scaling, so out-of-range intermediate values never wrap.
package dsp
