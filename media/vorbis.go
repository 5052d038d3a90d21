// SPDX-License-Identifier: EPL-2.0

package media

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// VorbisDecoder decodes Ogg Vorbis files.
type VorbisDecoder struct{}

func (VorbisDecoder) Decode(r io.ReadSeeker) (*Tape, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("ogg: %w", err)
	}

	return readVorbis(dec)
}

// readVorbis drains dec. Read returns the number of interleaved values
// decoded, always a multiple of the channel count.
func readVorbis(dec oggReader) (*Tape, error) {
	channels := dec.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidTape, channels)
	}

	buf := make([]float32, 4096-4096%channels)
	var samples []float32

	for {
		n, err := dec.Read(buf)
		samples = append(samples, buf[:n]...)

		if err == io.EOF || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ogg: %w", err)
		}
	}

	return FromInterleaved(dec.SampleRate(), channels, samples)
}
