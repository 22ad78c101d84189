// SPDX-License-Identifier: MPL-2.0

package gsfx

import (
	"errors"
	"fmt"
)

// ErrMalformedContainer is the sentinel error wrapped by MalformedContainerError.
var ErrMalformedContainer = errors.New("malformed container")

// MalformedContainerError describes why a container could not be decoded.
// It wraps ErrMalformedContainer for errors.Is() compatibility.
type MalformedContainerError struct {
	// Magic is the tag of the container being decoded ("GSFX", "GSVS", "GSPS").
	Magic string
	// Field names the header field or step that failed.
	Field string
	// Offset and Length describe the byte range that was requested.
	Offset uint64
	Length uint64
	// Size is the number of bytes that were available.
	Size int
	// Reason is a short description of the failure.
	Reason string
}

// Error implements the error interface.
func (e *MalformedContainerError) Error() string {
	if e.Length == 0 && e.Offset == 0 {
		return fmt.Sprintf("malformed %s container: %s: %s (%d bytes available)", e.Magic, e.Field, e.Reason, e.Size)
	}
	return fmt.Sprintf("malformed %s container: %s: %s: range [%d, %d) of %d bytes",
		e.Magic, e.Field, e.Reason, e.Offset, e.Offset+e.Length, e.Size)
}

// Unwrap returns ErrMalformedContainer for errors.Is() compatibility.
func (e *MalformedContainerError) Unwrap() error { return ErrMalformedContainer }
