// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// DefaultTarget is the device family compiled for when none is configured.
const DefaultTarget Target = "rdna2"

var (
	// ErrCompileFailed is the sentinel error wrapped by CompileError.
	ErrCompileFailed = errors.New("shader compilation failed")
	// ErrBridgeNotConfigured is returned when Bridge has no helper executable.
	ErrBridgeNotConfigured = errors.New("compiler bridge not configured")
	// ErrInvalidTarget is the sentinel error wrapped by InvalidTargetError.
	ErrInvalidTarget = errors.New("invalid compile target")
)

type (
	// Target names the device family to compile for ("rdna2").
	Target string

	// Compiler compiles shader bytecode for target and returns AMDIL text.
	Compiler interface {
		Compile(ctx context.Context, bytecode []byte, target Target) (string, error)
	}

	// Func adapts a function to the Compiler interface.
	Func func(ctx context.Context, bytecode []byte, target Target) (string, error)

	// CompileError describes a failed compilation.
	// It wraps ErrCompileFailed for errors.Is() compatibility.
	CompileError struct {
		Target Target
		// ExitCode is the helper's exit status, or -1 when it did not exit
		// normally (signal, timeout, failure to start).
		ExitCode int
		// Stderr is the helper's captured diagnostic output.
		Stderr string
		Reason string
	}

	// InvalidTargetError is returned when a Target value is not usable.
	// It wraps ErrInvalidTarget for errors.Is() compatibility.
	InvalidTargetError struct {
		Value Target
	}
)

// Compile calls f.
func (f Func) Compile(ctx context.Context, bytecode []byte, target Target) (string, error) {
	return f(ctx, bytecode, target)
}

// String returns the target name.
func (t Target) String() string { return string(t) }

// OrDefault returns t, or DefaultTarget when t is empty.
func (t Target) OrDefault() Target {
	if t == "" {
		return DefaultTarget
	}
	return t
}

// IsValid returns whether the Target is a non-empty name without whitespace.
func (t Target) IsValid() (bool, []error) {
	if t == "" || strings.ContainsFunc(string(t), unicode.IsSpace) {
		return false, []error{&InvalidTargetError{Value: t}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid compile target %q (must be a non-empty name without spaces)", string(e.Value))
}

// Unwrap returns ErrInvalidTarget for errors.Is() compatibility.
func (e *InvalidTargetError) Unwrap() error { return ErrInvalidTarget }

// Error implements the error interface.
func (e *CompileError) Error() string {
	msg := fmt.Sprintf("compile for %s failed: %s", e.Target, e.Reason)
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" (exit code %d)", e.ExitCode)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// Unwrap returns ErrCompileFailed for errors.Is() compatibility.
func (e *CompileError) Unwrap() error { return ErrCompileFailed }
