// SPDX-License-Identifier: EPL-2.0

package event

import (
	"fmt"
	"slices"

	"github.com/ik5/blockrender/block"
)

// Event is implemented only by the types in this package.
type Event interface {
	Offset() int
	isEvent()
}

// NoteOn starts a note at SampleOffset.
type NoteOn struct {
	Pitch        int
	Velocity     int
	SampleOffset int
}

// NoteOff releases a note at SampleOffset.
type NoteOff struct {
	Pitch        int
	Velocity     int
	SampleOffset int
}

// ParameterValue sets ParameterID to Value from SampleOffset on.
type ParameterValue struct {
	ParameterID  string
	Value        float64
	SampleOffset int
}

func (e NoteOn) Offset() int         { return e.SampleOffset }
func (e NoteOff) Offset() int        { return e.SampleOffset }
func (e ParameterValue) Offset() int { return e.SampleOffset }

func (NoteOn) isEvent()         {}
func (NoteOff) isEvent()        {}
func (ParameterValue) isEvent() {}

func (e NoteOn) String() string {
	return fmt.Sprintf("note-on(pitch=%d vel=%d @%d)", e.Pitch, e.Velocity, e.SampleOffset)
}

func (e NoteOff) String() string {
	return fmt.Sprintf("note-off(pitch=%d vel=%d @%d)", e.Pitch, e.Velocity, e.SampleOffset)
}

func (e ParameterValue) String() string {
	return fmt.Sprintf("param(%s=%g @%d)", e.ParameterID, e.Value, e.SampleOffset)
}

// Sort orders events by offset. Events at the same offset keep their
// relative order.
func Sort(events []Event) {
	slices.SortStableFunc(events, func(a, b Event) int {
		return a.Offset() - b.Offset()
	})
}

// Validate returns a fault for the first event whose offset lies outside
// [0, samples].
func Validate(events []Event, samples int) error {
	for i, ev := range events {
		if off := ev.Offset(); off < 0 || off > samples {
			return block.Faultf("event %d (%v) offset %d outside [0, %d]", i, ev, off, samples)
		}
	}
	return nil
}
