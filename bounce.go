// SPDX-License-Identifier: EPL-2.0

package blockrender

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ik5/blockrender/block"
	"github.com/ik5/blockrender/media"
	"github.com/ik5/blockrender/midiout"
	"github.com/ik5/blockrender/render"
	"github.com/ik5/blockrender/timeline"
)

var ErrInvalidOptions = errors.New("invalid bounce options")

// Options control an offline render.
type Options struct {
	SampleRate  int
	BlockSize   int
	Channels    int
	BitDepth    int
	Tempo       float64 // bpm, used for MIDI timing only
	MIDIChannel uint8
	Gain        float64 // gain held until the first automation point
	Tail        float64 // seconds rendered past the end of the track

	Store  render.TapeStore
	Logger *slog.Logger
}

// DefaultOptions renders 48 kHz stereo 16-bit in blocks of 512 samples.
func DefaultOptions() Options {
	return Options{
		SampleRate: 48000,
		BlockSize:  512,
		Channels:   2,
		BitDepth:   16,
		Tempo:      120,
		Gain:       1,
	}
}

func (o Options) validate() error {
	switch {
	case o.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidOptions, o.SampleRate)
	case o.BlockSize <= 0:
		return fmt.Errorf("%w: block size %d", ErrInvalidOptions, o.BlockSize)
	case o.Channels <= 0:
		return fmt.Errorf("%w: %d channels", ErrInvalidOptions, o.Channels)
	case o.Tail < 0 || math.IsNaN(o.Tail):
		return fmt.Errorf("%w: tail %v", ErrInvalidOptions, o.Tail)
	case o.Store == nil:
		return fmt.Errorf("%w: no tape store", ErrInvalidOptions)
	}
	return nil
}

// Result describes a finished bounce.
type Result struct {
	ID      uuid.UUID
	Track   string
	Blocks  int
	Frames  int
	Notes   int
	Elapsed time.Duration
}

// Bounce renders track from time 0 to its end plus opts.Tail, block by block,
// writing audio to audio as WAV and note events to midi as a Standard MIDI
// File. midi may be nil. ctx is checked between blocks.
func Bounce(ctx context.Context, track *timeline.Track, audio io.WriteSeeker, midi io.Writer, opts Options) (Result, error) {
	res := Result{ID: uuid.New(), Track: track.Name}

	if err := opts.validate(); err != nil {
		return res, err
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("run_id", res.ID.String(), "track", track.Name)

	wav, err := media.NewWAVWriter(audio, opts.SampleRate, opts.Channels, opts.BitDepth)
	if err != nil {
		return res, err
	}

	var rec *midiout.Recorder
	if midi != nil {
		rec, err = midiout.NewRecorder(track.Name, opts.SampleRate, opts.Tempo, opts.MIDIChannel)
		if err != nil {
			return res, err
		}
	}

	strip := NewStrip(track, opts.Store, opts.Channels, opts.Gain)
	total := int(math.Ceil((track.Duration() + opts.Tail) * float64(opts.SampleRate)))

	log.Debug("bounce started", "frames", total, "block_size", opts.BlockSize)
	started := time.Now()

	buf := make([][]float32, opts.Channels)
	for c := range buf {
		buf[c] = make([]float32, opts.BlockSize)
	}
	out := make([][]float32, opts.Channels)

	for first := 0; first < total; first += opts.BlockSize {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("%w", err)
		}

		count := min(opts.BlockSize, total-first)
		iv, err := block.At(opts.SampleRate, first, count)
		if err != nil {
			return res, err
		}

		for c := range out {
			out[c] = buf[c][:count]
		}

		events, err := strip.RenderBlock(iv, out)
		if err != nil {
			return res, fmt.Errorf("block %d %v: %w", res.Blocks, iv, err)
		}

		if err := wav.WriteBlock(out); err != nil {
			return res, err
		}
		if rec != nil {
			if err := rec.Record(first, events); err != nil {
				return res, err
			}
		}

		res.Blocks++
		res.Frames += count
	}

	if err := wav.Close(); err != nil {
		return res, err
	}
	if rec != nil {
		if _, err := rec.WriteTo(midi); err != nil {
			return res, err
		}
		res.Notes = rec.Len()
	}

	res.Elapsed = time.Since(started)
	log.Debug("bounce finished", "blocks", res.Blocks, "frames", res.Frames, "elapsed", res.Elapsed)

	return res, nil
}

// FileName turns a track name into a safe base file name.
func FileName(track string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(track))

	if name == "" || name == "." || name == ".." {
		return "track"
	}
	return name
}

// BounceFiles bounces track into dir as <name>.wav and <name>.mid.
// Errors from syncing and closing either file are reported.
func BounceFiles(ctx context.Context, track *timeline.Track, dir string, opts Options) (Result, error) {
	base := filepath.Join(dir, FileName(track.Name))

	audio, err := os.Create(base + ".wav")
	if err != nil {
		return Result{}, fmt.Errorf("%w", err)
	}

	midi, err := os.Create(base + ".mid")
	if err != nil {
		return Result{}, closeAll(fmt.Errorf("%w", err), audio)
	}

	res, err := Bounce(ctx, track, audio, midi, opts)
	if err == nil {
		if serr := audio.Sync(); serr != nil {
			err = fmt.Errorf("%w", serr)
		}
	}

	return res, closeAll(err, audio, midi)
}

// closeAll closes every file, joining close errors onto err.
func closeAll(err error, files ...io.Closer) error {
	for _, f := range files {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close: %w", cerr))
		}
	}
	return err
}
