// SPDX-License-Identifier: EPL-2.0

package render

import (
	"errors"
	"slices"
	"testing"

	"github.com/ik5/blockrender/block"
	"github.com/ik5/blockrender/event"
	"github.com/ik5/blockrender/internal/rendertest"
	"github.com/ik5/blockrender/timeline"
)

func trackWith(t *testing.T, content ...timeline.Content) *timeline.Track {
	t.Helper()

	clip, err := timeline.NewClip(0, 100)
	if err != nil {
		t.Fatal(err)
	}
	if err := clip.Add(content...); err != nil {
		t.Fatal(err)
	}

	tr := timeline.NewTrack("test")
	tr.AddClip(clip)
	return tr
}

func renderNotes(t *testing.T, x *NoteExpander, iv block.Interval) []event.Event {
	t.Helper()

	out := rendertest.Streams(1)
	if err := x.Render(iv, nil, nil, nil, out); err != nil {
		t.Fatalf("Render(%v) error = %v", iv, err)
	}
	return out[0].Events()
}

func TestNoteExpander_SingleBlock(t *testing.T) {
	t.Parallel()

	n := rendertest.Note(60, 100, 1.5, 0.25)
	x := NewNoteExpander(trackWith(t, n))

	out := rendertest.Streams(2)
	iv := rendertest.Interval(1, 2, 100)
	if err := x.Render(iv, nil, nil, nil, out); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := []event.Event{
		event.NoteOn{Pitch: 60, Velocity: 100, SampleOffset: 50},
		event.NoteOff{Pitch: 60, Velocity: 100, SampleOffset: 75},
	}
	for i, s := range out {
		if !slices.Equal(s.Events(), want) {
			t.Errorf("output %d = %v, want %v", i, s.Events(), want)
		}
	}
	if len(x.Sounding()) != 0 {
		t.Errorf("Sounding() = %v, want none", x.Sounding())
	}
}

func TestNoteExpander_SustainedNote(t *testing.T) {
	t.Parallel()

	n := rendertest.Note(64, 90, 0.5, 2)
	x := NewNoteExpander(trackWith(t, n))

	tests := []struct {
		iv       block.Interval
		want     []event.Event
		sounding int
	}{
		{rendertest.Interval(0, 1, 100), []event.Event{event.NoteOn{Pitch: 64, Velocity: 90, SampleOffset: 50}}, 1},
		{rendertest.Interval(1, 2, 100), nil, 1},
		{rendertest.Interval(2, 3, 100), []event.Event{event.NoteOff{Pitch: 64, Velocity: 90, SampleOffset: 50}}, 0},
		{rendertest.Interval(3, 4, 100), nil, 0},
	}

	for _, tt := range tests {
		got := renderNotes(t, x, tt.iv)
		if !slices.Equal(got, tt.want) {
			t.Errorf("block %v = %v, want %v", tt.iv, got, tt.want)
		}
		if s := x.Sounding(); len(s) != tt.sounding {
			t.Errorf("after %v Sounding() = %v, want %d notes", tt.iv, s, tt.sounding)
		}
	}
}

func TestNoteExpander_BoundaryNotDuplicated(t *testing.T) {
	t.Parallel()

	n := rendertest.Note(60, 100, 1, 1)
	x := NewNoteExpander(trackWith(t, n))

	var ons, offs int
	for k := range 4 {
		iv, err := block.At(100, k*100, 100)
		if err != nil {
			t.Fatal(err)
		}
		for _, ev := range renderNotes(t, x, iv) {
			switch ev := ev.(type) {
			case event.NoteOn:
				ons++
				if k != 0 || ev.SampleOffset != 100 {
					t.Errorf("NoteOn in block %d at %d, want block 0 at 100", k, ev.SampleOffset)
				}
			case event.NoteOff:
				offs++
				if k != 1 || ev.SampleOffset != 100 {
					t.Errorf("NoteOff in block %d at %d, want block 1 at 100", k, ev.SampleOffset)
				}
			}
		}
	}

	if ons != 1 || offs != 1 {
		t.Errorf("got %d NoteOn and %d NoteOff, want one of each", ons, offs)
	}
}

func TestNoteExpander_RetriggerOrder(t *testing.T) {
	t.Parallel()

	a := rendertest.Note(60, 100, 0, 0.5)
	b := rendertest.Note(60, 80, 0.5, 0.5)
	// Deliberately out of order.
	x := NewNoteExpander(rendertest.StaticQuery{Items: []timeline.Content{b, a}})

	got := renderNotes(t, x, rendertest.Interval(0, 1, 100))
	want := []event.Event{
		event.NoteOn{Pitch: 60, Velocity: 100, SampleOffset: 0},
		event.NoteOff{Pitch: 60, Velocity: 100, SampleOffset: 50},
		event.NoteOn{Pitch: 60, Velocity: 80, SampleOffset: 50},
		event.NoteOff{Pitch: 60, Velocity: 80, SampleOffset: 100},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Render() = %v, want %v", got, want)
	}
}

func TestNoteExpander_IgnoresRegions(t *testing.T) {
	t.Parallel()

	r, err := timeline.NewAudioRegion("loop.wav", 0, 1, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	x := NewNoteExpander(trackWith(t, r))

	if got := renderNotes(t, x, rendertest.Interval(0, 1, 64)); len(got) != 0 {
		t.Errorf("Render() = %v, want no events", got)
	}
}

func TestNoteExpander_Faults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []timeline.Content
		iv    block.Interval
	}{
		{
			name:  "note right of interval",
			items: []timeline.Content{rendertest.Note(60, 100, 3, 1)},
			iv:    rendertest.Interval(0, 2, 100),
		},
		{
			name:  "note left of interval",
			items: []timeline.Content{rendertest.Note(60, 100, 0, 0.5)},
			iv:    rendertest.Interval(1, 2, 100),
		},
		{
			name:  "zero-length interval",
			items: []timeline.Content{rendertest.Note(60, 100, 1, 1)},
			iv:    rendertest.Interval(1, 1, 10),
		},
		{
			name: "fault after a valid note",
			items: []timeline.Content{
				rendertest.Note(60, 100, 0.5, 0.1),
				rendertest.Note(62, 100, 5, 1),
			},
			iv: rendertest.Interval(0, 1, 100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			x := NewNoteExpander(rendertest.StaticQuery{Items: tt.items})
			out := rendertest.Streams(2)

			err := x.Render(tt.iv, nil, nil, nil, out)
			if !block.IsFault(err) {
				t.Fatalf("Render() error = %v, want internal consistency fault", err)
			}
			for i, s := range out {
				if s.Len() != 0 {
					t.Errorf("output %d = %v, want untouched", i, s.Events())
				}
			}
			if len(x.Sounding()) != 0 {
				t.Errorf("Sounding() = %v, want state unchanged", x.Sounding())
			}
		})
	}
}

func TestNoteExpander_NilStream(t *testing.T) {
	t.Parallel()

	x := NewNoteExpander(rendertest.StaticQuery{})
	out := []*event.Stream{event.NewStream(0), nil}

	err := x.Render(rendertest.Interval(0, 1, 10), nil, nil, nil, out)
	if !errors.Is(err, block.ErrContractViolation) {
		t.Errorf("Render() error = %v, want ErrContractViolation", err)
	}
}

func TestNoteExpander_Orphan(t *testing.T) {
	t.Parallel()

	n := rendertest.Note(67, 70, 0.5, 5)
	tr := trackWith(t, n)
	x := NewNoteExpander(tr)

	renderNotes(t, x, rendertest.Interval(0, 1, 100))

	// The clip disappears while the note is sounding.
	tr.Clips = nil

	got := renderNotes(t, x, rendertest.Interval(1, 2, 100))
	want := []event.Event{event.NoteOff{Pitch: 67, Velocity: 70, SampleOffset: 0}}
	if !slices.Equal(got, want) {
		t.Errorf("Render() = %v, want %v", got, want)
	}
	if len(x.Sounding()) != 0 {
		t.Errorf("Sounding() = %v, want none", x.Sounding())
	}
}

func TestNoteExpander_MovedWithoutReset(t *testing.T) {
	t.Parallel()

	held := rendertest.Note(60, 100, 0.5, 5)
	skipped := rendertest.Note(64, 90, 2, 4)
	x := NewNoteExpander(trackWith(t, held, skipped))

	renderNotes(t, x, rendertest.Interval(0, 1, 100))

	// The held note keeps sounding; the note that started in the skipped
	// span starts at the beginning of the block.
	got := renderNotes(t, x, rendertest.Interval(3, 4, 100))
	want := []event.Event{event.NoteOn{Pitch: 64, Velocity: 90, SampleOffset: 0}}
	if !slices.Equal(got, want) {
		t.Errorf("Render() = %v, want %v", got, want)
	}
	if !slices.Equal(x.Sounding(), []timeline.Note{held, skipped}) {
		t.Errorf("Sounding() = %v, want %v", x.Sounding(), []timeline.Note{held, skipped})
	}
}

func TestNoteExpander_RoundedBlockBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		start, dur  float64
		blocks      int
		first, last float64
	}{
		{"note over many blocks", 0.05, 0.9, 10, 0, 0.1},
		{"note on block edges", 0.3, 0.3, 10, 0, 0.1},
		{"odd block length", 0.01, 0.98, 30, 0, 1.0 / 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			x := NewNoteExpander(trackWith(t, rendertest.Note(60, 100, tt.start, tt.dur)))

			var ons, offs int
			for k := range tt.blocks {
				// Bounds computed independently per block, so one block's
				// end and the next block's start may differ by an ulp.
				start := tt.first + float64(k)*tt.last
				iv := rendertest.Interval(start, start+tt.last, 4800)

				for _, ev := range renderNotes(t, x, iv) {
					switch ev.(type) {
					case event.NoteOn:
						ons++
					case event.NoteOff:
						offs++
					}
				}
			}

			if ons != 1 || offs != 1 {
				t.Errorf("got %d NoteOn and %d NoteOff, want one of each", ons, offs)
			}
			if len(x.Sounding()) != 0 {
				t.Errorf("Sounding() = %v, want none", x.Sounding())
			}
		})
	}
}

func TestNoteExpander_StartInGap(t *testing.T) {
	t.Parallel()

	n := rendertest.Note(72, 110, 1.0005, 0.6)
	x := NewNoteExpander(trackWith(t, n))

	if got := renderNotes(t, x, rendertest.Interval(0, 1, 100)); len(got) != 0 {
		t.Fatalf("first block = %v, want no events", got)
	}

	got := renderNotes(t, x, rendertest.Interval(1.001, 2, 100))
	want := []event.Event{
		event.NoteOn{Pitch: 72, Velocity: 110, SampleOffset: 0},
		event.NoteOff{Pitch: 72, Velocity: 110, SampleOffset: 60},
	}
	if !slices.Equal(got, want) {
		t.Errorf("second block = %v, want %v", got, want)
	}
}

func TestNoteExpander_LayeredNotes(t *testing.T) {
	t.Parallel()

	n := rendertest.Note(48, 100, 0.5, 5)
	tr := trackWith(t, n, n)
	x := NewNoteExpander(tr)

	got := renderNotes(t, x, rendertest.Interval(0, 1, 100))
	on := event.NoteOn{Pitch: 48, Velocity: 100, SampleOffset: 50}
	if !slices.Equal(got, []event.Event{on, on}) {
		t.Errorf("first block = %v, want two NoteOn", got)
	}
	if s := x.Sounding(); len(s) != 2 {
		t.Errorf("Sounding() = %v, want both copies", s)
	}

	tr.Clips = nil

	got = renderNotes(t, x, rendertest.Interval(1, 2, 100))
	off := event.NoteOff{Pitch: 48, Velocity: 100, SampleOffset: 0}
	if !slices.Equal(got, []event.Event{off, off}) {
		t.Errorf("second block = %v, want two NoteOff", got)
	}
	if s := x.Sounding(); len(s) != 0 {
		t.Errorf("Sounding() = %v, want none", s)
	}
}

func TestNoteExpander_Reset(t *testing.T) {
	t.Parallel()

	n := rendertest.Note(60, 100, 0.5, 5)
	x := NewNoteExpander(trackWith(t, n))

	renderNotes(t, x, rendertest.Interval(0, 1, 100))
	if !slices.Equal(x.Sounding(), []timeline.Note{n}) {
		t.Fatalf("Sounding() = %v, want %v", x.Sounding(), n)
	}

	x.Reset()
	if len(x.Sounding()) != 0 {
		t.Fatalf("Sounding() after Reset = %v, want none", x.Sounding())
	}

	got := renderNotes(t, x, rendertest.Interval(0, 1, 100))
	want := []event.Event{event.NoteOn{Pitch: 60, Velocity: 100, SampleOffset: 50}}
	if !slices.Equal(got, want) {
		t.Errorf("Render() after Reset = %v, want %v", got, want)
	}
}

func BenchmarkNoteExpander(b *testing.B) {
	clip, _ := timeline.NewClip(0, 60)
	for i := range 240 {
		n, _ := timeline.NewNote(36+i%48, 100, float64(i)*0.25, 0.2)
		_ = clip.Add(n)
	}
	tr := timeline.NewTrack("bench")
	tr.AddClip(clip)

	x := NewNoteExpander(tr)
	out := rendertest.Streams(1)

	b.ReportAllocs()
	k := 0
	for b.Loop() {
		iv, _ := block.At(48000, k*512, 512)
		out[0].Clear()
		if err := x.Render(iv, nil, nil, nil, out); err != nil {
			b.Fatal(err)
		}
		k = (k + 1) % 5000
	}
}
