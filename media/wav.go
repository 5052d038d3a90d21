// SPDX-License-Identifier: EPL-2.0

package media

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// WAVDecoder decodes integer PCM WAV files.
type WAVDecoder struct{}

func (WAVDecoder) Decode(r io.ReadSeeker) (*Tape, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: WAV format tag %d", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}

	tape, err := readPCM(dec, int(dec.BitDepth))
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	return tape, nil
}
