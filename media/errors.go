// SPDX-License-Identifier: EPL-2.0

package media

import "errors"

var (
	ErrUnsupportedFormat   = errors.New("unsupported audio format")
	ErrInvalidTape         = errors.New("invalid tape")
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrNotAiffFile         = errors.New("not an AIFF file")
	ErrUnsupportedEncoding = errors.New("only integer PCM is supported")
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	ErrChannelMismatch     = errors.New("buffer count does not match channel count")
)
