// SPDX-License-Identifier: MPL-2.0

package amdil

import (
	"errors"
	"fmt"
)

// ErrDecodeFailed is the sentinel error wrapped by DecodeError.
var ErrDecodeFailed = errors.New("AMDIL decode failed")

// DecodeError reports the line that could not be decoded.
// It wraps ErrDecodeFailed for errors.Is() compatibility.
type DecodeError struct {
	// Line is the 1-based line number.
	Line int
	// Text is the offending line with comments removed.
	Text string
	// Reason is a short description of the failure.
	Reason string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("AMDIL line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Unwrap returns ErrDecodeFailed for errors.Is() compatibility.
func (e *DecodeError) Unwrap() error { return ErrDecodeFailed }
