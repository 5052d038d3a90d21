// SPDX-License-Identifier: EPL-2.0

package timeline

import "errors"

var (
	ErrInvalidNote        = errors.New("invalid note")
	ErrInvalidRegion      = errors.New("invalid audio region")
	ErrInvalidClip        = errors.New("invalid clip")
	ErrContentOutsideClip = errors.New("content outside clip bounds")
)
