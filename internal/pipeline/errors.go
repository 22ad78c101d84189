// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"fmt"

	"github.com/fxodeps/fxodeps/internal/gsfx"
)

// Steps of the per-stage workflow, used in StageError.
const (
	StepExtract = "extract bytecode"
	StepCompile = "compile"
	StepDecode  = "decode"
	StepStore   = "store"
)

// StageError records which step failed for which stage of a file.
// It unwraps to the underlying error so errors.Is() matches the sentinel of
// the failing collaborator (compiler.ErrCompileFailed, amdil.ErrDecodeFailed,
// dxbc.ErrMalformedDXBC).
type StageError struct {
	Path  string
	Stage gsfx.Stage
	Step  string
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s stage: %s: %v", e.Path, e.Stage, e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error { return e.Err }
