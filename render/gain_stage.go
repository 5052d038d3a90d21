// SPDX-License-Identifier: EPL-2.0

package render

import (
	"github.com/ik5/blockrender/block"
	"github.com/ik5/blockrender/dsp"
	"github.com/ik5/blockrender/event"
	"github.com/ik5/blockrender/param"
)

// GainParameter is the parameter id GainStage listens to.
const GainParameter = "gain"

// GainStage copies each input buffer to the matching output buffer scaled by
// a gain value.
//
// Incoming ParameterValue events for GainParameter are applied in offset
// order (ties keep arrival order) and the value left after the last one is
// used for the whole block. Without such events the gain held from the
// previous block is kept.
type GainStage struct {
	gain *param.Parameter
}

func NewGainStage(initial float64) *GainStage {
	return &GainStage{gain: param.New(GainParameter, initial)}
}

// Gain returns the currently held gain.
func (g *GainStage) Gain() float64 { return g.gain.Value() }

// Render implements Renderer.
func (g *GainStage) Render(iv block.Interval, streamIn, streamOut [][]float32, eventIn, _ []*event.Stream) error {
	if err := checkChannels(iv, streamIn, streamOut); err != nil {
		return err
	}
	if err := checkStreams(eventIn); err != nil {
		return err
	}

	events := event.Merge(eventIn)
	if err := event.Validate(events, iv.SampleCount()); err != nil {
		return err
	}

	g.gain.Apply(events)

	gain := float32(g.gain.Value())
	for i, in := range streamIn {
		dsp.ScaleInto(streamOut[i], in, gain)
	}

	return nil
}
