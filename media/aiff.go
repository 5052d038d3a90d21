// SPDX-License-Identifier: EPL-2.0

package media

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
)

// AIFFDecoder decodes integer PCM AIFF files.
type AIFFDecoder struct{}

func (AIFFDecoder) Decode(r io.ReadSeeker) (*Tape, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	tape, err := readPCM(dec, int(dec.BitDepth))
	if err != nil {
		return nil, fmt.Errorf("aiff: %w", err)
	}

	return tape, nil
}
