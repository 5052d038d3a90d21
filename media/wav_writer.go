// SPDX-License-Identifier: EPL-2.0

package media

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/blockrender/dsp"
)

// WAVWriter streams planar blocks into an integer PCM WAV file.
type WAVWriter struct {
	enc      *wav.Encoder
	channels int
	bitDepth int
	buf      *goaudio.IntBuffer
	frames   int
}

func NewWAVWriter(w io.WriteSeeker, sampleRate, channels, bitDepth int) (*WAVWriter, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidTape, sampleRate, channels)
	}
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	return &WAVWriter{
		enc:      wav.NewEncoder(w, sampleRate, bitDepth, channels, wavFormatPCM),
		channels: channels,
		bitDepth: bitDepth,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteBlock interleaves one block. Every buffer must have the same length.
func (w *WAVWriter) WriteBlock(buffers [][]float32) error {
	if len(buffers) != w.channels {
		return fmt.Errorf("%w: got %d, want %d", ErrChannelMismatch, len(buffers), w.channels)
	}

	frames := len(buffers[0])
	for c, b := range buffers {
		if len(b) != frames {
			return fmt.Errorf("%w: buffer %d has %d frames, want %d", ErrChannelMismatch, c, len(b), frames)
		}
	}

	need := frames * w.channels
	if cap(w.buf.Data) < need {
		w.buf.Data = make([]int, need)
	}
	w.buf.Data = w.buf.Data[:need]

	for f := range frames {
		base := f * w.channels
		for c, b := range buffers {
			w.buf.Data[base+c] = dsp.FloatToPCM(b[f], w.bitDepth)
		}
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	w.frames += frames

	return nil
}

// Frames written so far.
func (w *WAVWriter) Frames() int { return w.frames }

// Close finalizes the header. It does not close the underlying writer.
func (w *WAVWriter) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
