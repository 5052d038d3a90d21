// SPDX-License-Identifier: EPL-2.0

package blockrender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/blockrender/block"
	"github.com/ik5/blockrender/event"
	"github.com/ik5/blockrender/internal/rendertest"
	"github.com/ik5/blockrender/render"
	"github.com/ik5/blockrender/timeline"
)

// testTrack plays a constant pad for one second with a note on top and
// halves the gain at 0.5s. Times are multiples of 1/64.
func testTrack(t *testing.T) (*timeline.Track, rendertest.TapeStore) {
	t.Helper()

	clip, err := timeline.NewClip(0, 1)
	require.NoError(t, err)

	pad, err := timeline.NewAudioRegion("pad", 0, 1, 0, 1)
	require.NoError(t, err)
	require.NoError(t, clip.Add(pad, rendertest.Note(60, 100, 0.25, 0.25)))

	track := timeline.NewTrack("lead")
	track.AddClip(clip)
	track.AddLane(timeline.NewLane(render.GainParameter, timeline.Point{Time: 0.5, Value: 0.5}))

	return track, rendertest.TapeStore{"pad": rendertest.ConstantTape(64, 1, 128, 0.5)}
}

func TestStrip_RenderBlock(t *testing.T) {
	t.Parallel()

	track, store := testTrack(t)
	s := NewStrip(track, store, 2, 1)

	out := rendertest.Buffers(2, 32)
	events, err := s.RenderBlock(rendertest.Interval(0, 0.5, 32), out)
	require.NoError(t, err)

	assert.Equal(t, []event.Event{
		event.NoteOn{Pitch: 60, Velocity: 100, SampleOffset: 16},
		event.NoteOff{Pitch: 60, Velocity: 100, SampleOffset: 32},
		event.ParameterValue{ParameterID: render.GainParameter, Value: 0.5, SampleOffset: 32},
	}, events)
	assert.InDelta(t, 0.5, s.Gain(), 1e-9)
	for c := range out {
		for i, v := range out[c] {
			require.InDeltaf(t, 0.25, v, 1e-6, "out[%d][%d]", c, i)
		}
	}

	events, err = s.RenderBlock(rendertest.Interval(0.5, 1, 32), out)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.InDelta(t, 0.25, out[0][31], 1e-6)
}

func TestStrip_NoLane(t *testing.T) {
	t.Parallel()

	track, store := testTrack(t)
	track.Lanes = nil
	s := NewStrip(track, store, 1, 0.5)

	out := rendertest.Buffers(1, 32)
	events, err := s.RenderBlock(rendertest.Interval(0, 0.5, 32), out)
	require.NoError(t, err)

	assert.Len(t, events, 2)
	assert.InDelta(t, 0.25, out[0][0], 1e-6)
}

func TestStrip_Reset(t *testing.T) {
	t.Parallel()

	track, store := testTrack(t)
	s := NewStrip(track, store, 2, 1)
	iv := rendertest.Interval(0, 0.5, 32)

	_, err := s.RenderBlock(iv, rendertest.Buffers(2, 32))
	require.NoError(t, err)

	s.Reset()

	events, err := s.RenderBlock(iv, rendertest.Buffers(2, 32))
	require.NoError(t, err)
	assert.Len(t, events, 3, "events should replay after Reset")
}

func TestStrip_Errors(t *testing.T) {
	t.Parallel()

	track, store := testTrack(t)

	t.Run("channel mismatch", func(t *testing.T) {
		t.Parallel()

		s := NewStrip(track, store, 2, 1)
		_, err := s.RenderBlock(rendertest.Interval(0, 0.5, 32), rendertest.Buffers(1, 32))
		assert.ErrorIs(t, err, block.ErrContractViolation)
	})

	t.Run("missing tape", func(t *testing.T) {
		t.Parallel()

		s := NewStrip(track, rendertest.TapeStore{}, 2, 1)
		_, err := s.RenderBlock(rendertest.Interval(0, 0.5, 32), rendertest.Buffers(2, 32))
		require.Error(t, err)
		assert.False(t, block.IsFault(err))
	})

	t.Run("zero-length interval", func(t *testing.T) {
		t.Parallel()

		s := NewStrip(track, store, 2, 1)
		_, err := s.RenderBlock(rendertest.Interval(0.5, 0.5, 0), rendertest.Buffers(2, 0))
		assert.True(t, block.IsFault(err))
	})
}
