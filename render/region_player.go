// SPDX-License-Identifier: EPL-2.0

package render

import (
	"fmt"

	"github.com/ik5/blockrender/block"
	"github.com/ik5/blockrender/dsp"
	"github.com/ik5/blockrender/event"
	"github.com/ik5/blockrender/media"
	"github.com/ik5/blockrender/timeline"
)

// TapeStore resolves an audio region's source to decoded audio.
type TapeStore interface {
	Tape(source string) (*media.Tape, error)
}

// RegionPlayer renders the audio regions of a timeline.Query into its
// output buffers. Outputs are cleared first; overlapping regions sum.
//
// Sample i of a block plays at Start + i*Length/SampleCount, so the sample
// at offset SampleCount belongs to the next block. A region covers
// [Start, End). Output channel c reads tape channel c; a mono tape feeds every
// output and extra output channels of a narrower tape stay silent.
type RegionPlayer struct {
	query timeline.Query
	store TapeStore

	regions []timeline.AudioRegion
	tapes   []*media.Tape
}

func NewRegionPlayer(q timeline.Query, store TapeStore) *RegionPlayer {
	return &RegionPlayer{query: q, store: store}
}

// Render implements Renderer. Audio inputs and events are ignored.
func (p *RegionPlayer) Render(iv block.Interval, _, streamOut [][]float32, _, _ []*event.Stream) error {
	if err := checkOutputs(iv, streamOut); err != nil {
		return err
	}
	if iv.SampleCount() > 0 && iv.Length() <= 0 {
		return block.Faultf("%d samples over zero-length interval %v", iv.SampleCount(), iv)
	}

	p.regions = p.regions[:0]
	p.tapes = p.tapes[:0]

	for _, c := range p.query.Overlapping(iv.Start(), iv.End()) {
		switch c := c.(type) {
		case timeline.AudioRegion:
			if c.Start > iv.End() || c.End < iv.Start() {
				return block.Faultf("region %q [%v, %v] outside interval %v", c.Source, c.Start, c.End, iv)
			}
			tape, err := p.store.Tape(c.Source)
			if err != nil {
				return fmt.Errorf("region %q: %w", c.Source, err)
			}
			p.regions = append(p.regions, c)
			p.tapes = append(p.tapes, tape)
		case timeline.Note:
			// expanded by NoteExpander
		default:
			return block.Faultf("unsupported clip content %T", c)
		}
	}

	for _, buf := range streamOut {
		dsp.Zero(buf)
	}

	n := iv.SampleCount()
	if n == 0 {
		return nil
	}
	step := iv.Length() / float64(n)

	for k, r := range p.regions {
		tape := p.tapes[k]
		speed := float64(tape.SampleRate()) * r.Rate

		for ch, out := range streamOut {
			src := ch
			if tape.Channels() == 1 {
				src = 0
			} else if ch >= tape.Channels() {
				continue
			}
			frames := tape.Channel(src)

			for i := range n {
				t := iv.Start() + float64(i)*step
				if t < r.Start || t >= r.End {
					continue
				}
				pos := float64(r.CueSample) + (t-r.Start)*speed
				out[i] += dsp.SampleAt(frames, pos)
			}
		}
	}

	return nil
}
