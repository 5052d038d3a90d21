// SPDX-License-Identifier: EPL-2.0

package media

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/blockrender/dsp"
)

// pcmReader is the part of the go-audio wav and aiff decoders used here.
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

const pcmChunk = 4096

// readPCM drains r into a tape, normalizing integers of bitDepth bits.
func readPCM(r pcmReader, bitDepth int) (*Tape, error) {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	format := r.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: missing format", ErrInvalidTape)
	}

	chunk := pcmChunk - pcmChunk%format.NumChannels
	buf := &goaudio.IntBuffer{
		Format:         format,
		Data:           make([]int, chunk),
		SourceBitDepth: bitDepth,
	}

	var samples []float32
	for {
		n, err := r.PCMBuffer(buf)
		for i := range n {
			samples = append(samples, dsp.PCMToFloat(buf.Data[i], bitDepth))
		}

		if err == io.EOF || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	return FromInterleaved(format.SampleRate, format.NumChannels, samples)
}
