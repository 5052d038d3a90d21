// SPDX-License-Identifier: EPL-2.0

package block

import (
	"errors"
	"fmt"
)

var (
	ErrInternalConsistency = errors.New("internal consistency violation")
	ErrContractViolation   = errors.New("render contract violation")
	ErrInvalidInterval     = errors.New("invalid interval")
)

// IsFault reports whether err is an engine fault rather than a caller mistake.
func IsFault(err error) bool {
	return errors.Is(err, ErrInternalConsistency)
}

// Faultf returns an error wrapping ErrInternalConsistency.
func Faultf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInternalConsistency, fmt.Sprintf(format, args...))
}

// Contractf returns an error wrapping ErrContractViolation.
func Contractf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrContractViolation, fmt.Sprintf(format, args...))
}
