// SPDX-License-Identifier: EPL-2.0

package timeline

import (
	"cmp"
	"fmt"
	"slices"
)

// Query returns the content overlapping [start, end], inclusive at both ends.
type Query interface {
	Overlapping(start, end float64) []Content
}

// Clip groups content that lies within [Start, End].
type Clip struct {
	Start    float64
	End      float64
	Contents []Content
}

// NewClip builds an empty clip spanning [start, end].
func NewClip(start, end float64) (*Clip, error) {
	if !finite(start) || !finite(end) || end <= start {
		return nil, fmt.Errorf("%w: span [%v, %v]", ErrInvalidClip, start, end)
	}
	return &Clip{Start: start, End: end}, nil
}

// Add appends content after checking it fits inside the clip.
func (c *Clip) Add(content ...Content) error {
	for _, item := range content {
		start, end := item.Span()
		if start < c.Start || end > c.End {
			return fmt.Errorf("%w: [%v, %v] not within [%v, %v]", ErrContentOutsideClip, start, end, c.Start, c.End)
		}
	}
	c.Contents = append(c.Contents, content...)
	return nil
}

// Track is an ordered set of clips plus automation lanes.
type Track struct {
	Name  string
	Clips []*Clip
	Lanes []Lane
}

func NewTrack(name string) *Track {
	return &Track{Name: name}
}

func (t *Track) AddClip(c *Clip) {
	t.Clips = append(t.Clips, c)
}

func (t *Track) AddLane(l Lane) {
	t.Lanes = append(t.Lanes, l)
}

// Lane returns the automation lane for parameter id.
func (t *Track) Lane(id string) (Lane, bool) {
	for _, l := range t.Lanes {
		if l.Parameter == id {
			return l, true
		}
	}
	return Lane{}, false
}

// Overlapping implements Query. Results are ordered by start time; content
// starting together keeps clip order.
func (t *Track) Overlapping(start, end float64) []Content {
	var res []Content
	for _, c := range t.Clips {
		if c.Start > end || c.End < start {
			continue
		}
		for _, item := range c.Contents {
			s, e := item.Span()
			if s <= end && e >= start {
				res = append(res, item)
			}
		}
	}

	slices.SortStableFunc(res, func(a, b Content) int {
		as, _ := a.Span()
		bs, _ := b.Span()
		return cmp.Compare(as, bs)
	})

	return res
}

// Notes returns only the notes overlapping [start, end].
func (t *Track) Notes(start, end float64) []Note {
	var notes []Note
	for _, item := range t.Overlapping(start, end) {
		if n, ok := item.(Note); ok {
			notes = append(notes, n)
		}
	}
	return notes
}

// Duration is the end time of the last clip, or 0 for an empty track.
func (t *Track) Duration() float64 {
	var d float64
	for _, c := range t.Clips {
		d = max(d, c.End)
	}
	for _, l := range t.Lanes {
		if n := len(l.Points); n > 0 {
			d = max(d, l.Points[n-1].Time)
		}
	}
	return d
}
