// SPDX-License-Identifier: EPL-2.0

package block

import (
	"fmt"
	"math"
)

// Interval is one block's span in seconds and in samples.
// The zero value is an empty block at time 0.
type Interval struct {
	start   float64
	end     float64
	samples int
}

// NewInterval builds an interval after checking start <= end and samples >= 0.
func NewInterval(start, end float64, samples int) (Interval, error) {
	if math.IsNaN(start) || math.IsNaN(end) || math.IsInf(start, 0) || math.IsInf(end, 0) {
		return Interval{}, fmt.Errorf("%w: non-finite bounds [%v, %v]", ErrInvalidInterval, start, end)
	}
	if start > end {
		return Interval{}, fmt.Errorf("%w: start %v > end %v", ErrInvalidInterval, start, end)
	}
	if samples < 0 {
		return Interval{}, fmt.Errorf("%w: negative sample count %d", ErrInvalidInterval, samples)
	}

	return Interval{start: start, end: end, samples: samples}, nil
}

// At returns the interval covering count samples starting at sample index
// first, for a stream running at sampleRate Hz.
func At(sampleRate, first, count int) (Interval, error) {
	if sampleRate <= 0 {
		return Interval{}, fmt.Errorf("%w: sample rate %d", ErrInvalidInterval, sampleRate)
	}
	if first < 0 {
		return Interval{}, fmt.Errorf("%w: negative first sample %d", ErrInvalidInterval, first)
	}

	rate := float64(sampleRate)
	return NewInterval(float64(first)/rate, float64(first+count)/rate, count)
}

func (iv Interval) Start() float64   { return iv.start }
func (iv Interval) End() float64     { return iv.end }
func (iv Interval) SampleCount() int { return iv.samples }

// Length is End - Start in seconds.
func (iv Interval) Length() float64 { return iv.end - iv.start }

// LocalSampleRate is the number of samples per second inside this block,
// or 0 for a zero-length block.
func (iv Interval) LocalSampleRate() float64 {
	length := iv.Length()
	if length <= 0 {
		return 0
	}
	return float64(iv.samples) / length
}

// Contains reports whether t lies within [Start, End].
func (iv Interval) Contains(t float64) bool {
	return t >= iv.start && t <= iv.end
}

// Overlaps reports whether [start, end] shares at least one instant with the
// interval. Touching at a single boundary counts as overlap.
func (iv Interval) Overlaps(start, end float64) bool {
	return start <= iv.end && end >= iv.start
}

// SamplePosition converts an absolute time into an offset in [0, SampleCount].
//
// t must lie inside the interval and the interval must have a positive
// length; anything else is an internal consistency fault.
func (iv Interval) SamplePosition(t float64) (int, error) {
	length := iv.Length()
	if length <= 0 {
		return 0, Faultf("zero-length interval [%v, %v]", iv.start, iv.end)
	}
	if !iv.Contains(t) {
		return 0, Faultf("time %v outside interval [%v, %v]", t, iv.start, iv.end)
	}

	offset := int(math.RoundToEven(float64(iv.samples) * (t - iv.start) / length))
	if offset < 0 || offset > iv.samples {
		return 0, Faultf("offset %d outside [0, %d]", offset, iv.samples)
	}

	return offset, nil
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%gs, %gs] x %d", iv.start, iv.end, iv.samples)
}
