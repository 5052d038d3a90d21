// SPDX-License-Identifier: EPL-2.0

package render

import (
	"github.com/ik5/blockrender/block"
	"github.com/ik5/blockrender/event"
)

// Renderer performs one block's worth of work.
type Renderer interface {
	Render(iv block.Interval, streamIn, streamOut [][]float32, eventIn, eventOut []*event.Stream) error
}

// checkOutputs verifies every output buffer holds exactly one block.
func checkOutputs(iv block.Interval, streamOut [][]float32) error {
	for i, buf := range streamOut {
		if len(buf) != iv.SampleCount() {
			return block.Contractf("output buffer %d has %d samples, block has %d", i, len(buf), iv.SampleCount())
		}
	}
	return nil
}

// checkChannels verifies inputs and outputs pair up channel by channel.
func checkChannels(iv block.Interval, streamIn, streamOut [][]float32) error {
	if len(streamIn) != len(streamOut) {
		return block.Contractf("%d input buffers, %d output buffers", len(streamIn), len(streamOut))
	}
	for i, buf := range streamIn {
		if len(buf) != iv.SampleCount() {
			return block.Contractf("input buffer %d has %d samples, block has %d", i, len(buf), iv.SampleCount())
		}
	}
	return checkOutputs(iv, streamOut)
}

func checkStreams(eventOut []*event.Stream) error {
	for i, s := range eventOut {
		if s == nil {
			return block.Contractf("event output %d is nil", i)
		}
	}
	return nil
}

func appendAll(eventOut []*event.Stream, events []event.Event) {
	if len(events) == 0 {
		return
	}
	for _, s := range eventOut {
		s.Append(events...)
	}
}
