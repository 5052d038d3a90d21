// SPDX-License-Identifier: EPL-2.0

package timeline

import (
	"fmt"
	"math"
)

// Content is implemented only by Note and AudioRegion.
type Content interface {
	// Span returns the absolute start and end time in seconds.
	Span() (start, end float64)
	isContent()
}

// Note is a pitched event with an absolute start and note-off time.
type Note struct {
	Pitch    int
	Velocity int
	Start    float64
	End      float64
}

// NewNote validates and builds a note lasting duration seconds from start.
func NewNote(pitch, velocity int, start, duration float64) (Note, error) {
	if pitch < 0 || pitch > 127 {
		return Note{}, fmt.Errorf("%w: pitch %d outside 0..127", ErrInvalidNote, pitch)
	}
	if velocity < 0 || velocity > 127 {
		return Note{}, fmt.Errorf("%w: velocity %d outside 0..127", ErrInvalidNote, velocity)
	}
	if !finite(start) || !finite(duration) || duration <= 0 {
		return Note{}, fmt.Errorf("%w: start %v duration %v", ErrInvalidNote, start, duration)
	}

	return Note{Pitch: pitch, Velocity: velocity, Start: start, End: start + duration}, nil
}

func (n Note) Span() (float64, float64) { return n.Start, n.End }
func (Note) isContent()                 {}

// AudioRegion plays Source from CueSample at Rate times its native speed
// between Start and End.
type AudioRegion struct {
	Source    string
	Start     float64
	End       float64
	CueSample int
	Rate      float64
}

// NewAudioRegion validates and builds a region.
func NewAudioRegion(source string, start, end float64, cue int, rate float64) (AudioRegion, error) {
	if source == "" {
		return AudioRegion{}, fmt.Errorf("%w: empty source", ErrInvalidRegion)
	}
	if !finite(start) || !finite(end) || end <= start {
		return AudioRegion{}, fmt.Errorf("%w: span [%v, %v]", ErrInvalidRegion, start, end)
	}
	if cue < 0 {
		return AudioRegion{}, fmt.Errorf("%w: negative cue sample %d", ErrInvalidRegion, cue)
	}
	if !finite(rate) || rate <= 0 {
		return AudioRegion{}, fmt.Errorf("%w: rate %v", ErrInvalidRegion, rate)
	}

	return AudioRegion{Source: source, Start: start, End: end, CueSample: cue, Rate: rate}, nil
}

func (r AudioRegion) Span() (float64, float64) { return r.Start, r.End }
func (AudioRegion) isContent()                 {}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
