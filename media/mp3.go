// SPDX-License-Identifier: EPL-2.0

package media

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/blockrender/dsp"
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// MP3Decoder decodes MPEG-1/2 Layer III files. go-mp3 always yields
// 16-bit stereo.
type MP3Decoder struct{}

func (MP3Decoder) Decode(r io.ReadSeeker) (*Tape, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	return readMP3(dec)
}

func readMP3(dec mp3Reader) (*Tape, error) {
	const channels = 2

	buf := make([]byte, 8192)
	var samples []float32
	var carry []byte

	for {
		n, err := dec.Read(buf)
		data := append(carry, buf[:n]...)

		whole := len(data) &^ 1
		for i := 0; i < whole; i += 2 {
			v := int16(binary.LittleEndian.Uint16(data[i : i+2]))
			samples = append(samples, dsp.PCMToFloat(int(v), 16))
		}
		carry = append(carry[:0], data[whole:]...)

		if err == io.EOF || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mp3: %w", err)
		}
	}

	return FromInterleaved(dec.SampleRate(), channels, samples)
}
