// SPDX-License-Identifier: EPL-2.0

package blockrender

import (
	"github.com/ik5/blockrender/block"
	"github.com/ik5/blockrender/event"
	"github.com/ik5/blockrender/render"
	"github.com/ik5/blockrender/timeline"
)

// Strip is the processing chain of one track:
//
//	NoteExpander ─┐
//	AutomationLane┴─> events ─┐
//	RegionPlayer ──> audio ───┴─> GainStage ─> out
//
// The lane is only present when the track automates render.GainParameter.
type Strip struct {
	track    *timeline.Track
	channels int

	notes  *render.NoteExpander
	lane   *render.AutomationLane
	player *render.RegionPlayer
	gain   *render.GainStage

	events []*event.Stream
	dry    [][]float32
}

// NewStrip builds the chain for track, reading region audio from store.
func NewStrip(track *timeline.Track, store render.TapeStore, channels int, gain float64) *Strip {
	s := &Strip{
		track:    track,
		channels: channels,
		notes:    render.NewNoteExpander(track),
		player:   render.NewRegionPlayer(track, store),
		gain:     render.NewGainStage(gain),
		events:   []*event.Stream{event.NewStream(64)},
		dry:      make([][]float32, channels),
	}
	if l, ok := track.Lane(render.GainParameter); ok {
		s.lane = render.NewAutomationLane(l)
	}

	return s
}

func (s *Strip) Track() *timeline.Track { return s.track }
func (s *Strip) Channels() int          { return s.channels }
func (s *Strip) Gain() float64          { return s.gain.Gain() }

// RenderBlock renders iv into out, which must hold Channels() buffers of
// iv.SampleCount() samples. It returns the block's events ordered by offset;
// the slice is reused by the next call.
func (s *Strip) RenderBlock(iv block.Interval, out [][]float32) ([]event.Event, error) {
	if len(out) != s.channels {
		return nil, block.Contractf("%d output buffers for a %d channel strip", len(out), s.channels)
	}

	n := iv.SampleCount()
	for c := range s.dry {
		if cap(s.dry[c]) < n {
			s.dry[c] = make([]float32, n)
		}
		s.dry[c] = s.dry[c][:n]
	}

	s.events[0].Clear()

	if err := s.notes.Render(iv, nil, nil, nil, s.events); err != nil {
		return nil, err
	}
	if s.lane != nil {
		if err := s.lane.Render(iv, nil, nil, nil, s.events); err != nil {
			return nil, err
		}
	}
	if err := s.player.Render(iv, nil, s.dry, nil, nil); err != nil {
		return nil, err
	}
	if err := s.gain.Render(iv, s.dry, out, s.events, nil); err != nil {
		return nil, err
	}

	evs := s.events[0].Events()
	event.Sort(evs)

	return evs, nil
}

// Reset rewinds the event sources; call it whenever the transport moves. The held gain
// is kept.
func (s *Strip) Reset() {
	s.notes.Reset()
	if s.lane != nil {
		s.lane.Reset()
	}
}
