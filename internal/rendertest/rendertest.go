// SPDX-License-Identifier: EPL-2.0

// Package rendertest provides fixtures for testing renderers: queries that
// return content unfiltered, in-memory tape stores and generated tapes.
package rendertest

import (
	"fmt"
	"math"

	"github.com/ik5/blockrender/block"
	"github.com/ik5/blockrender/event"
	"github.com/ik5/blockrender/media"
	"github.com/ik5/blockrender/timeline"
)

// StaticQuery returns Items for every request, whether they overlap or not.
// Use it to feed renderers content a well-behaved query would never return.
type StaticQuery struct {
	Items []timeline.Content
}

func (q StaticQuery) Overlapping(float64, float64) []timeline.Content { return q.Items }

// TapeStore serves tapes from a map.
type TapeStore map[string]*media.Tape

func (s TapeStore) Tape(source string) (*media.Tape, error) {
	t, ok := s[source]
	if !ok {
		return nil, fmt.Errorf("no tape %q", source)
	}
	return t, nil
}

// Interval builds an interval and panics on invalid input.
func Interval(start, end float64, samples int) block.Interval {
	iv, err := block.NewInterval(start, end, samples)
	if err != nil {
		panic(err)
	}
	return iv
}

// Buffers allocates channels buffers of n samples each.
func Buffers(channels, n int) [][]float32 {
	bufs := make([][]float32, channels)
	for i := range bufs {
		bufs[i] = make([]float32, n)
	}
	return bufs
}

// Filled allocates channels buffers of n samples set to value.
func Filled(channels, n int, value float32) [][]float32 {
	bufs := Buffers(channels, n)
	for _, b := range bufs {
		for i := range b {
			b[i] = value
		}
	}
	return bufs
}

// Streams allocates n empty event streams.
func Streams(n int) []*event.Stream {
	s := make([]*event.Stream, n)
	for i := range s {
		s[i] = event.NewStream(0)
	}
	return s
}

// NewTape creates a tape whose samples come from waveform.
func NewTape(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *media.Tape {
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
		for f := range frames {
			data[c][f] = waveform(f, c)
		}
	}

	t, err := media.NewTape(sampleRate, data...)
	if err != nil {
		panic(err)
	}
	return t
}

// ConstantTape creates a tape with every sample set to value.
func ConstantTape(sampleRate, channels, frames int, value float32) *media.Tape {
	return NewTape(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

// SineTape creates a tape holding a sine wave.
func SineTape(sampleRate, channels, frames int, frequency float64) *media.Tape {
	return NewTape(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// RampTape creates a mono tape where frame i holds i/frames.
func RampTape(sampleRate, frames int) *media.Tape {
	return NewTape(sampleRate, 1, frames, func(frame, _ int) float32 {
		return float32(frame) / float32(frames)
	})
}

// Note builds a note and panics on invalid input.
func Note(pitch, velocity int, start, duration float64) timeline.Note {
	n, err := timeline.NewNote(pitch, velocity, start, duration)
	if err != nil {
		panic(err)
	}
	return n
}
