// SPDX-License-Identifier: MPL-2.0

package gsfx

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// StageVertex is the vertex shader stage (GSVS).
	StageVertex Stage = iota + 1
	// StageFragment is the fragment (pixel) shader stage (GSPS).
	StageFragment
)

const (
	// FileEffect is a .fxo file holding a GSFX container.
	FileEffect FileKind = iota + 1
	// FileVertex is a .vso file holding a single GSVS container.
	FileVertex
	// FileFragment is a .pso file holding a single GSPS container.
	FileFragment
)

var (
	// ErrInvalidStage is returned when a Stage value is not recognized.
	ErrInvalidStage = errors.New("invalid shader stage")
	// ErrUnknownFileKind is returned when a file extension is not a known container kind.
	ErrUnknownFileKind = errors.New("unknown container file kind")
)

type (
	// Stage identifies a shader pipeline stage.
	Stage uint8

	// FileKind identifies which container layout a file uses.
	FileKind uint8

	// InvalidStageError is returned when a Stage value is not recognized.
	// It wraps ErrInvalidStage for errors.Is() compatibility.
	InvalidStageError struct {
		Value string
	}
)

// String returns the stage name as stored in the corpus ("Vertex", "Fragment").
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "Vertex"
	case StageFragment:
		return "Fragment"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// Magic returns the container tag of the stage.
func (s Stage) Magic() string {
	switch s {
	case StageVertex:
		return MagicVertex
	case StageFragment:
		return MagicFragment
	default:
		return ""
	}
}

// IsValid returns whether the Stage is one of the defined stages.
func (s Stage) IsValid() (bool, []error) {
	switch s {
	case StageVertex, StageFragment:
		return true, nil
	default:
		return false, []error{&InvalidStageError{Value: s.String()}}
	}
}

// ParseStage parses a stage name as produced by Stage.String.
// Matching is case-insensitive.
func ParseStage(s string) (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertex":
		return StageVertex, nil
	case "fragment":
		return StageFragment, nil
	default:
		return 0, &InvalidStageError{Value: s}
	}
}

// Error implements the error interface for InvalidStageError.
func (e *InvalidStageError) Error() string {
	return fmt.Sprintf("invalid shader stage %q (valid: Vertex, Fragment)", e.Value)
}

// Unwrap returns ErrInvalidStage for errors.Is() compatibility.
func (e *InvalidStageError) Unwrap() error { return ErrInvalidStage }

// String returns the file extension of the kind.
func (k FileKind) String() string {
	switch k {
	case FileEffect:
		return ".fxo"
	case FileVertex:
		return ".vso"
	case FileFragment:
		return ".pso"
	default:
		return fmt.Sprintf("FileKind(%d)", uint8(k))
	}
}

// DetectFileKind maps a file name to its container kind by extension.
func DetectFileKind(name string) (FileKind, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".fxo":
		return FileEffect, nil
	case ".vso":
		return FileVertex, nil
	case ".pso":
		return FileFragment, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFileKind, name)
	}
}

// ParseFile decodes buf according to kind and returns its blobs in stage order.
func ParseFile(kind FileKind, buf []byte) ([]Blob, error) {
	switch kind {
	case FileEffect:
		c, err := Parse(buf)
		if err != nil {
			return nil, err
		}
		return c.Blobs(), nil
	case FileVertex:
		b, err := ParseVertex(buf)
		if err != nil {
			return nil, err
		}
		return []Blob{b}, nil
	case FileFragment:
		b, err := ParseFragment(buf)
		if err != nil {
			return nil, err
		}
		return []Blob{b}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFileKind, kind)
	}
}

// ShaderName derives the shader name from a file path: the base name up to
// its first dot ("skin.opaque.fxo" -> "skin").
func ShaderName(path string) string {
	base := filepath.Base(path)
	if name, _, ok := strings.Cut(base, "."); ok {
		return name
	}
	return base
}
