// SPDX-License-Identifier: EPL-2.0

// Package midiout turns rendered note events into MIDI: single channel voice
// messages, or a Standard MIDI File recorded block by block.
package midiout

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/ik5/blockrender/event"
)

// TicksPerQuarter is the resolution of recorded files.
const TicksPerQuarter = 960

var (
	ErrNoMessage   = errors.New("event has no MIDI equivalent")
	ErrOutOfRange  = errors.New("value outside MIDI range")
	ErrInvalidRate = errors.New("invalid sample rate or tempo")
)

// Message converts a NoteOn or NoteOff into a channel voice message.
// Parameter changes return ErrNoMessage.
func Message(ev event.Event, channel uint8) (midi.Message, error) {
	if channel > 15 {
		return nil, fmt.Errorf("%w: channel %d", ErrOutOfRange, channel)
	}

	switch ev := ev.(type) {
	case event.NoteOn:
		key, vel, err := keyVelocity(ev.Pitch, ev.Velocity)
		if err != nil {
			return nil, err
		}
		return midi.NoteOn(channel, key, vel), nil
	case event.NoteOff:
		key, vel, err := keyVelocity(ev.Pitch, ev.Velocity)
		if err != nil {
			return nil, err
		}
		return midi.NoteOffVelocity(channel, key, vel), nil
	case event.ParameterValue:
		return nil, fmt.Errorf("%w: %v", ErrNoMessage, ev)
	}

	return nil, fmt.Errorf("%w: %T", ErrNoMessage, ev)
}

func keyVelocity(pitch, velocity int) (uint8, uint8, error) {
	if pitch < 0 || pitch > 127 || velocity < 0 || velocity > 127 {
		return 0, 0, fmt.Errorf("%w: pitch %d velocity %d", ErrOutOfRange, pitch, velocity)
	}
	return uint8(pitch), uint8(velocity), nil //nolint:gosec // bounded above
}

type stamped struct {
	tick uint32
	msg  midi.Message
}

// Recorder collects the note events of consecutive blocks and writes them as
// a type 1 Standard MIDI File: a tempo track followed by one note track.
type Recorder struct {
	name       string
	sampleRate int
	bpm        float64
	channel    uint8

	events []stamped
}

func NewRecorder(name string, sampleRate int, bpm float64, channel uint8) (*Recorder, error) {
	if sampleRate <= 0 || bpm <= 0 || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		return nil, fmt.Errorf("%w: %d Hz at %v bpm", ErrInvalidRate, sampleRate, bpm)
	}
	if channel > 15 {
		return nil, fmt.Errorf("%w: channel %d", ErrOutOfRange, channel)
	}

	return &Recorder{name: name, sampleRate: sampleRate, bpm: bpm, channel: channel}, nil
}

// Tick converts an absolute sample index to a tick at the recorder's tempo.
func (r *Recorder) Tick(sample int) uint32 {
	seconds := float64(sample) / float64(r.sampleRate)
	return uint32(math.Round(seconds * r.bpm / 60 * TicksPerQuarter))
}

// Record adds the note events of a block whose first sample is at index
// first. Parameter changes are skipped.
func (r *Recorder) Record(first int, events []event.Event) error {
	for _, ev := range events {
		if _, ok := ev.(event.ParameterValue); ok {
			continue
		}

		msg, err := Message(ev, r.channel)
		if err != nil {
			return err
		}
		r.events = append(r.events, stamped{tick: r.Tick(first + ev.Offset()), msg: msg})
	}

	return nil
}

// Len is the number of recorded messages.
func (r *Recorder) Len() int { return len(r.events) }

// SMF builds the file from what was recorded so far.
func (r *Recorder) SMF() (*smf.SMF, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	var tempo smf.Track
	tempo.Add(0, smf.MetaMeter(4, 4))
	tempo.Add(0, smf.MetaTempo(r.bpm))
	tempo.Close(0)
	if err := s.Add(tempo); err != nil {
		return nil, fmt.Errorf("tempo track: %w", err)
	}

	sorted := slices.Clone(r.events)
	slices.SortStableFunc(sorted, func(a, b stamped) int {
		return int(a.tick) - int(b.tick)
	})

	var notes smf.Track
	if r.name != "" {
		notes.Add(0, smf.MetaTrackSequenceName(r.name))
	}
	var last uint32
	for _, e := range sorted {
		notes.Add(e.tick-last, e.msg)
		last = e.tick
	}
	notes.Close(0)
	if err := s.Add(notes); err != nil {
		return nil, fmt.Errorf("note track: %w", err)
	}

	return s, nil
}

// WriteTo writes the recording as a Standard MIDI File.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	s, err := r.SMF()
	if err != nil {
		return 0, err
	}

	n, err := s.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}

	return n, nil
}

// Reset drops everything recorded.
func (r *Recorder) Reset() {
	r.events = r.events[:0]
}
