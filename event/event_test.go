// SPDX-License-Identifier: EPL-2.0

package event

import (
	"testing"

	"github.com/ik5/blockrender/block"
)

func TestEvent_Offset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ev   Event
		want int
	}{
		{"note on", NoteOn{Pitch: 60, Velocity: 100, SampleOffset: 12}, 12},
		{"note off", NoteOff{Pitch: 60, SampleOffset: 99}, 99},
		{"parameter", ParameterValue{ParameterID: "gain", Value: 0.5, SampleOffset: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.ev.Offset(); got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSort_Stable(t *testing.T) {
	t.Parallel()

	events := []Event{
		ParameterValue{ParameterID: "gain", Value: 1, SampleOffset: 10},
		ParameterValue{ParameterID: "gain", Value: 2, SampleOffset: 5},
		ParameterValue{ParameterID: "gain", Value: 3, SampleOffset: 10},
		ParameterValue{ParameterID: "gain", Value: 4, SampleOffset: 0},
	}

	Sort(events)

	want := []float64{4, 2, 1, 3}
	for i, ev := range events {
		if got := ev.(ParameterValue).Value; got != want[i] {
			t.Errorf("events[%d].Value = %v, want %v", i, got, want[i])
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	ok := []Event{NoteOn{SampleOffset: 0}, NoteOff{SampleOffset: 64}}
	if err := Validate(ok, 64); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	for _, bad := range []Event{NoteOn{SampleOffset: -1}, NoteOff{SampleOffset: 65}} {
		err := Validate([]Event{bad}, 64)
		if !block.IsFault(err) {
			t.Errorf("Validate(%v) error = %v, want fault", bad, err)
		}
	}
}

func TestEvent_String(t *testing.T) {
	t.Parallel()

	got := NoteOn{Pitch: 64, Velocity: 90, SampleOffset: 3}.String()
	if got != "note-on(pitch=64 vel=90 @3)" {
		t.Errorf("String() = %q", got)
	}
}
