// SPDX-License-Identifier: EPL-2.0

package event

import "testing"

func TestStream_AppendAndClear(t *testing.T) {
	t.Parallel()

	s := NewStream(4)
	s.Append(NoteOn{Pitch: 60, SampleOffset: 1})
	s.Append(NoteOff{Pitch: 60, SampleOffset: 2}, NoteOn{Pitch: 62, SampleOffset: 3})

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if _, ok := s.Events()[1].(NoteOff); !ok {
		t.Errorf("Events()[1] = %T, want NoteOff", s.Events()[1])
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", s.Len())
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	a := NewStream(0)
	a.Append(
		ParameterValue{ParameterID: "gain", Value: 1, SampleOffset: 20},
		ParameterValue{ParameterID: "gain", Value: 2, SampleOffset: 7},
	)
	b := NewStream(0)
	b.Append(
		ParameterValue{ParameterID: "gain", Value: 3, SampleOffset: 7},
		NoteOn{Pitch: 60, SampleOffset: 0},
	)

	merged := Merge([]*Stream{a, b})
	if len(merged) != 4 {
		t.Fatalf("len(Merge()) = %d, want 4", len(merged))
	}

	wantOffsets := []int{0, 7, 7, 20}
	for i, ev := range merged {
		if ev.Offset() != wantOffsets[i] {
			t.Errorf("merged[%d].Offset() = %d, want %d", i, ev.Offset(), wantOffsets[i])
		}
	}

	// Tie at offset 7: stream a arrived first.
	if v := merged[1].(ParameterValue).Value; v != 2 {
		t.Errorf("merged[1].Value = %v, want 2 (arrival order)", v)
	}

	if Merge(nil) != nil {
		t.Error("Merge(nil) should be nil")
	}
	if Merge([]*Stream{NewStream(0)}) != nil {
		t.Error("Merge() of empty streams should be nil")
	}
}

func BenchmarkMerge(b *testing.B) {
	streams := make([]*Stream, 4)
	for i := range streams {
		streams[i] = NewStream(64)
		for j := range 64 {
			streams[i].Append(ParameterValue{ParameterID: "gain", Value: float64(j), SampleOffset: (j * 7) % 512})
		}
	}

	b.ReportAllocs()

	for b.Loop() {
		_ = Merge(streams)
	}
}
