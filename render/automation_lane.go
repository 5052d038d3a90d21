// SPDX-License-Identifier: EPL-2.0

package render

import (
	"sort"

	"github.com/ik5/blockrender/block"
	"github.com/ik5/blockrender/event"
	"github.com/ik5/blockrender/timeline"
)

// AutomationLane emits a ParameterValue event for every lane point inside the
// block, appended to every event output.
//
// A cursor makes each point go out once: a point on a block boundary belongs
// to the earlier block. Points the cursor has not reached but that lie before
// the block (the first block, a gap between block bounds, a move forward) are
// not sent one by one; the latest of them is sent at offset 0 so downstream
// parameters match the block start. Only Reset rewinds the cursor, so a host
// moving the transport backwards calls Reset first.
type AutomationLane struct {
	lane timeline.Lane
	next int

	events []event.Event
}

func NewAutomationLane(l timeline.Lane) *AutomationLane {
	return &AutomationLane{lane: l}
}

// Render implements Renderer. Audio buffers are not touched.
func (a *AutomationLane) Render(iv block.Interval, _, _ [][]float32, _, eventOut []*event.Stream) error {
	if err := checkStreams(eventOut); err != nil {
		return err
	}
	if iv.Length() <= 0 {
		return block.Faultf("automation over zero-length interval %v", iv)
	}

	points := a.lane.Points
	next := a.next
	a.events = a.events[:0]

	behind := sort.Search(len(points)-next, func(i int) bool {
		return points[next+i].Time >= iv.Start()
	})
	if behind > 0 {
		next += behind
		a.events = append(a.events, event.ParameterValue{
			ParameterID:  a.lane.Parameter,
			Value:        points[next-1].Value,
			SampleOffset: 0,
		})
	}

	for ; next < len(points) && points[next].Time <= iv.End(); next++ {
		pos, err := iv.SamplePosition(points[next].Time)
		if err != nil {
			return err
		}
		a.events = append(a.events, event.ParameterValue{
			ParameterID:  a.lane.Parameter,
			Value:        points[next].Value,
			SampleOffset: pos,
		})
	}

	a.next = next

	appendAll(eventOut, a.events)

	return nil
}

// Reset rewinds the lane. Call it whenever the transport moves.
func (a *AutomationLane) Reset() {
	a.next = 0
}
