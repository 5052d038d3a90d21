// SPDX-License-Identifier: EPL-2.0

package render

import (
	"cmp"
	"slices"

	"github.com/ik5/blockrender/block"
	"github.com/ik5/blockrender/event"
	"github.com/ik5/blockrender/timeline"
)

// NoteExpander converts the notes of a timeline.Query into NoteOn and NoteOff
// events, appended to every event output.
//
// Query overlap is inclusive at both ends, so a note touching a block
// boundary is returned for both blocks that share it. The expander keeps the
// notes it has started (sounding) and the notes it released in the previous
// block (released) so each note produces one NoteOn and one NoteOff in total,
// even when consecutive block bounds are off by a rounding error.
//
// This state is only cleared by Reset, which a host calls when it moves the
// transport. A sounding note the query no longer returns is released at
// offset 0. A note starting after the previous block's end but before the
// current block's start is started at offset 0.
//
// Identical notes (same pitch, velocity, start and end) are counted, so
// layered copies are each started and released.
type NoteExpander struct {
	query timeline.Query

	sounding map[timeline.Note]int
	released map[timeline.Note]struct{}
	boundary float64
	primed   bool

	// per-block scratch
	events  []event.Event
	present map[timeline.Note]struct{}
	starts  []timeline.Note
	ends    []timeline.Note
}

func NewNoteExpander(q timeline.Query) *NoteExpander {
	return &NoteExpander{
		query:    q,
		sounding: make(map[timeline.Note]int),
		released: make(map[timeline.Note]struct{}),
		present:  make(map[timeline.Note]struct{}),
	}
}

// Render implements Renderer. Audio buffers are not touched.
func (x *NoteExpander) Render(iv block.Interval, _, _ [][]float32, _, eventOut []*event.Stream) error {
	if err := checkStreams(eventOut); err != nil {
		return err
	}
	if iv.Length() <= 0 {
		return block.Faultf("note expansion over zero-length interval %v", iv)
	}

	x.events = x.events[:0]
	x.starts = x.starts[:0]
	x.ends = x.ends[:0]
	clear(x.present)

	for _, c := range x.query.Overlapping(iv.Start(), iv.End()) {
		switch c := c.(type) {
		case timeline.Note:
			if err := x.expand(iv, c); err != nil {
				return err
			}
		case timeline.AudioRegion:
			// played by RegionPlayer
		default:
			return block.Faultf("unsupported clip content %T", c)
		}
	}

	orphans := x.orphans()
	for _, n := range orphans {
		x.events = append(x.events, event.NoteOff{Pitch: n.Pitch, Velocity: n.Velocity, SampleOffset: 0})
	}

	if err := event.Validate(x.events, iv.SampleCount()); err != nil {
		return err
	}

	x.commit(iv, orphans)

	sortNoteEvents(x.events)
	appendAll(eventOut, x.events)

	return nil
}

// expand decides which events n produces in iv. It only reads state.
func (x *NoteExpander) expand(iv block.Interval, n timeline.Note) error {
	if n.Start > iv.End() {
		return block.Faultf("note (pitch %d) starts at %v, right of interval %v", n.Pitch, n.Start, iv)
	}
	if n.End < iv.Start() {
		return block.Faultf("note (pitch %d) ends at %v, left of interval %v", n.Pitch, n.End, iv)
	}

	x.present[n] = struct{}{}

	held := x.sounding[n] > 0
	_, done := x.released[n]

	if !held && !done && x.startsIn(iv, n) {
		pos := 0
		if n.Start >= iv.Start() {
			var err error
			if pos, err = iv.SamplePosition(n.Start); err != nil {
				return err
			}
		}
		x.events = append(x.events, event.NoteOn{Pitch: n.Pitch, Velocity: n.Velocity, SampleOffset: pos})
		x.starts = append(x.starts, n)
	}

	if n.End <= iv.End() && !done {
		pos, err := iv.SamplePosition(n.End)
		if err != nil {
			return err
		}
		x.events = append(x.events, event.NoteOff{Pitch: n.Pitch, Velocity: n.Velocity, SampleOffset: pos})
		x.ends = append(x.ends, n)
	}

	return nil
}

// startsIn reports whether n starts inside iv or in the gap between the
// previous block's end and iv.
func (x *NoteExpander) startsIn(iv block.Interval, n timeline.Note) bool {
	if n.Start >= iv.Start() {
		return true
	}
	return x.primed && n.Start > x.boundary
}

// orphans lists sounding notes the query no longer returns, once per
// sounding copy.
func (x *NoteExpander) orphans() []timeline.Note {
	var res []timeline.Note
	for n, count := range x.sounding {
		if _, ok := x.present[n]; ok {
			continue
		}
		for range count {
			res = append(res, n)
		}
	}
	sortNotes(res)
	return res
}

func (x *NoteExpander) commit(iv block.Interval, orphans []timeline.Note) {
	clear(x.released)

	for _, n := range orphans {
		delete(x.sounding, n)
	}
	for _, n := range x.starts {
		x.sounding[n]++
	}
	for _, n := range x.ends {
		if x.sounding[n] > 1 {
			x.sounding[n]--
		} else {
			delete(x.sounding, n)
		}
		x.released[n] = struct{}{}
	}

	x.boundary = iv.End()
	x.primed = true
}

// Sounding returns the notes started and not yet released, ordered by start
// time and pitch. Layered copies are listed once each.
func (x *NoteExpander) Sounding() []timeline.Note {
	res := make([]timeline.Note, 0, len(x.sounding))
	for n, count := range x.sounding {
		for range count {
			res = append(res, n)
		}
	}
	sortNotes(res)
	return res
}

// Reset forgets all cross-block state. Call it whenever the transport moves.
func (x *NoteExpander) Reset() {
	clear(x.sounding)
	clear(x.released)
	x.boundary = 0
	x.primed = false
}

func sortNotes(notes []timeline.Note) {
	slices.SortFunc(notes, func(a, b timeline.Note) int {
		return cmp.Or(
			cmp.Compare(a.Start, b.Start),
			cmp.Compare(a.Pitch, b.Pitch),
			cmp.Compare(a.End, b.End),
			cmp.Compare(a.Velocity, b.Velocity),
		)
	})
}

// sortNoteEvents orders events by offset. At equal offsets NoteOff comes
// before NoteOn so a pitch retriggered on the same sample is not cut short.
func sortNoteEvents(events []event.Event) {
	rank := func(ev event.Event) int {
		switch ev.(type) {
		case event.NoteOff:
			return 0
		case event.NoteOn:
			return 1
		}
		return 2
	}

	slices.SortStableFunc(events, func(a, b event.Event) int {
		return cmp.Or(cmp.Compare(a.Offset(), b.Offset()), cmp.Compare(rank(a), rank(b)))
	})
}
