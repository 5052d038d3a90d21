// SPDX-License-Identifier: EPL-2.0

// Package project reads session files: HCL documents describing tracks,
// their clips and automation.
//
//	track "lead" {
//	  gain = 0.8
//	  clip {
//	    start = bar
//	    end   = bars(3)
//	    note {
//	      pitch    = 60
//	      velocity = 100
//	      start    = 0
//	      duration = beat
//	    }
//	    region {
//	      source = "loop.wav"
//	      start  = 0
//	      end    = bar
//	    }
//	  }
//	  automation "gain" {
//	    point {
//	      time  = 0
//	      value = 0.5
//	    }
//	  }
//	}
//
// Times are in seconds. Note and region times are relative to their clip;
// automation times are absolute. The variables beat and bar and the functions
// beats(n) and bars(n) convert musical lengths at the session tempo.
package project

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/ik5/blockrender/timeline"
)

var (
	ErrParse          = errors.New("failed to parse session")
	ErrInvalidSession = errors.New("invalid session")
)

// BeatsPerBar is the meter assumed by the bar variable.
const BeatsPerBar = 4

type sessionFile struct {
	Tracks []trackBlock `hcl:"track,block"`
}

type trackBlock struct {
	Name       string            `hcl:"name,label"`
	Gain       *float64          `hcl:"gain,optional"`
	Channel    *int              `hcl:"channel,optional"`
	Clips      []clipBlock       `hcl:"clip,block"`
	Automation []automationBlock `hcl:"automation,block"`
}

type clipBlock struct {
	Start   float64       `hcl:"start"`
	End     float64       `hcl:"end"`
	Notes   []noteBlock   `hcl:"note,block"`
	Regions []regionBlock `hcl:"region,block"`
}

type noteBlock struct {
	Pitch    int     `hcl:"pitch"`
	Velocity *int    `hcl:"velocity,optional"`
	Start    float64 `hcl:"start"`
	Duration float64 `hcl:"duration"`
}

type regionBlock struct {
	Source string   `hcl:"source"`
	Start  float64  `hcl:"start"`
	End    float64  `hcl:"end"`
	Cue    *int     `hcl:"cue,optional"`
	Rate   *float64 `hcl:"rate,optional"`
}

type automationBlock struct {
	Parameter string       `hcl:"parameter,label"`
	Points    []pointBlock `hcl:"point,block"`
}

type pointBlock struct {
	Time  float64 `hcl:"time"`
	Value float64 `hcl:"value"`
}

// Track is a timeline track plus its mixer settings.
type Track struct {
	*timeline.Track

	Gain    float64
	Channel uint8 // MIDI channel, 0-15
}

// Session is a decoded session file.
type Session struct {
	Tempo  float64
	Tracks []Track
}

// Sources lists every region source in the session once, in order of first
// use.
func (s *Session) Sources() []string {
	var res []string
	for _, t := range s.Tracks {
		for _, c := range t.Clips {
			for _, item := range c.Contents {
				r, ok := item.(timeline.AudioRegion)
				if ok && !slices.Contains(res, r.Source) {
					res = append(res, r.Source)
				}
			}
		}
	}
	return res
}

// LoadFile reads and decodes the session at path.
func LoadFile(path string, tempo float64) (*Session, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return Parse(src, path, tempo)
}

// Parse decodes a session. filename is only used in diagnostics.
func Parse(src []byte, filename string, tempo float64) (*Session, error) {
	if tempo <= 0 {
		return nil, fmt.Errorf("%w: tempo %v", ErrInvalidSession, tempo)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrParse, diags.Error())
	}

	var doc sessionFile
	diags = gohcl.DecodeBody(file.Body, evalContext(tempo), &doc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrParse, diags.Error())
	}

	s := &Session{Tempo: tempo, Tracks: make([]Track, 0, len(doc.Tracks))}
	for _, tb := range doc.Tracks {
		if slices.ContainsFunc(s.Tracks, func(t Track) bool { return t.Name == tb.Name }) {
			return nil, fmt.Errorf("%w: duplicate track %q", ErrInvalidSession, tb.Name)
		}

		t, err := tb.build()
		if err != nil {
			return nil, fmt.Errorf("track %q: %w", tb.Name, err)
		}
		s.Tracks = append(s.Tracks, t)
	}

	return s, nil
}

func evalContext(tempo float64) *hcl.EvalContext {
	beat := 60 / tempo
	bar := beat * BeatsPerBar

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"beat": cty.NumberFloatVal(beat),
			"bar":  cty.NumberFloatVal(bar),
		},
		Functions: map[string]function.Function{
			"beats": scale(beat),
			"bars":  scale(bar),
		},
	}
}

// scale returns a function multiplying its argument by unit.
func scale(unit float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{
				Name: "n",
				Type: cty.Number,
			},
		},
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return args[0].Multiply(cty.NumberFloatVal(unit)), nil
		},
	})
}

func (tb trackBlock) build() (Track, error) {
	t := Track{Track: timeline.NewTrack(tb.Name), Gain: 1}

	if tb.Gain != nil {
		t.Gain = *tb.Gain
	}
	if tb.Channel != nil {
		if *tb.Channel < 0 || *tb.Channel > 15 {
			return Track{}, fmt.Errorf("%w: MIDI channel %d outside 0..15", ErrInvalidSession, *tb.Channel)
		}
		t.Channel = uint8(*tb.Channel) //nolint:gosec // bounded above
	}

	for i, cb := range tb.Clips {
		clip, err := cb.build()
		if err != nil {
			return Track{}, fmt.Errorf("clip %d: %w", i, err)
		}
		t.AddClip(clip)
	}

	for _, ab := range tb.Automation {
		if _, ok := t.Lane(ab.Parameter); ok {
			return Track{}, fmt.Errorf("%w: duplicate automation %q", ErrInvalidSession, ab.Parameter)
		}
		points := make([]timeline.Point, len(ab.Points))
		for i, p := range ab.Points {
			points[i] = timeline.Point{Time: p.Time, Value: p.Value}
		}
		t.AddLane(timeline.NewLane(ab.Parameter, points...))
	}

	return t, nil
}

func (cb clipBlock) build() (*timeline.Clip, error) {
	clip, err := timeline.NewClip(cb.Start, cb.End)
	if err != nil {
		return nil, err
	}

	for _, nb := range cb.Notes {
		velocity := 100
		if nb.Velocity != nil {
			velocity = *nb.Velocity
		}
		n, err := timeline.NewNote(nb.Pitch, velocity, cb.Start+nb.Start, nb.Duration)
		if err != nil {
			return nil, err
		}
		if err := clip.Add(n); err != nil {
			return nil, err
		}
	}

	for _, rb := range cb.Regions {
		cue, rate := 0, 1.0
		if rb.Cue != nil {
			cue = *rb.Cue
		}
		if rb.Rate != nil {
			rate = *rb.Rate
		}
		r, err := timeline.NewAudioRegion(rb.Source, cb.Start+rb.Start, cb.Start+rb.End, cue, rate)
		if err != nil {
			return nil, err
		}
		if err := clip.Add(r); err != nil {
			return nil, err
		}
	}

	return clip, nil
}
