// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fxodeps/fxodeps/internal/compiler"
	"github.com/fxodeps/fxodeps/internal/pipeline"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultCompileTimeout bounds a single bridge invocation.
	DefaultCompileTimeout = 2 * time.Minute
	// DefaultCategory is the corpus category used when none is given.
	DefaultCategory = "default"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidFilePath is returned when a FilePath value is whitespace-only.
	ErrInvalidFilePath = errors.New("invalid file path")
	// ErrInvalidTimeout is returned when a compile timeout is negative.
	ErrInvalidTimeout = errors.New("invalid compile timeout")
	// ErrInvalidPattern is returned when a batch pattern is not a valid glob.
	ErrInvalidPattern = errors.New("invalid file pattern")
	// ErrInvalidCompilerConfig is the sentinel error wrapped by InvalidCompilerConfigError.
	ErrInvalidCompilerConfig = errors.New("invalid compiler config")
	// ErrInvalidCorpusConfig is the sentinel error wrapped by InvalidCorpusConfigError.
	ErrInvalidCorpusConfig = errors.New("invalid corpus config")
	// ErrInvalidBatchConfig is the sentinel error wrapped by InvalidBatchConfigError.
	ErrInvalidBatchConfig = errors.New("invalid batch config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// FilePath is an optional filesystem path. The zero value ("") is valid
	// and means "not configured"; non-zero values must not be whitespace-only.
	FilePath string

	// InvalidFilePathError is returned when a FilePath value is non-empty
	// but whitespace-only.
	InvalidFilePathError struct {
		Value FilePath
	}

	// InvalidTimeoutError is returned when a compile timeout is negative.
	InvalidTimeoutError struct {
		Value time.Duration
	}

	// InvalidPatternError is returned when a batch pattern fails
	// doublestar.ValidatePattern.
	InvalidPatternError struct {
		Value string
	}

	// InvalidCompilerConfigError collects field errors of a CompilerConfig.
	InvalidCompilerConfigError struct {
		FieldErrors []error
	}

	// InvalidCorpusConfigError collects field errors of a CorpusConfig.
	InvalidCorpusConfigError struct {
		FieldErrors []error
	}

	// InvalidBatchConfigError collects field errors of a BatchConfig.
	InvalidBatchConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError collects field errors of a UIConfig.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Compiler configures the external compiler bridge
		Compiler CompilerConfig `json:"compiler" mapstructure:"compiler"`
		// Corpus configures the default corpus store
		Corpus CorpusConfig `json:"corpus" mapstructure:"corpus"`
		// Batch configures directory scanning
		Batch BatchConfig `json:"batch" mapstructure:"batch"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// CompilerConfig configures the bridge process that turns DXBC bytecode
	// into AMDIL text.
	CompilerConfig struct {
		// Bridge is the path to the bridge executable
		Bridge FilePath `json:"bridge" mapstructure:"bridge"`
		// Library is the path to the vendor compiler library the bridge loads
		Library FilePath `json:"library" mapstructure:"library"`
		// Target is the device family to compile for
		Target compiler.Target `json:"target" mapstructure:"target"`
		// Timeout bounds each compile; zero disables the bound
		Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
	}

	// CorpusConfig configures the corpus store used by extract.
	CorpusConfig struct {
		// Path is the default SQLite database path
		Path FilePath `json:"path" mapstructure:"path"`
		// Category is the default category name for stored shaders
		Category string `json:"category" mapstructure:"category"`
	}

	// BatchConfig configures directory scanning for batch and extract.
	BatchConfig struct {
		// Patterns are doublestar globs matched relative to the scanned directory
		Patterns []string `json:"patterns" mapstructure:"patterns"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// IsValid returns whether the CompilerConfig has valid fields.
// An empty Target is valid and means compiler.DefaultTarget.
func (c CompilerConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Bridge.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Library.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.Target != "" {
		if valid, fieldErrs := c.Target.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if c.Timeout < 0 {
		errs = append(errs, &InvalidTimeoutError{Value: c.Timeout})
	}
	if len(errs) > 0 {
		return false, []error{&InvalidCompilerConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCompilerConfigError.
func (e *InvalidCompilerConfigError) Error() string {
	return fmt.Sprintf("invalid compiler config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidCompilerConfig for errors.Is() compatibility.
func (e *InvalidCompilerConfigError) Unwrap() error { return ErrInvalidCompilerConfig }

// IsValid returns whether the CorpusConfig has valid fields.
func (c CorpusConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.Path.IsValid(); !valid {
		return false, []error{&InvalidCorpusConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCorpusConfigError.
func (e *InvalidCorpusConfigError) Error() string {
	return fmt.Sprintf("invalid corpus config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidCorpusConfig for errors.Is() compatibility.
func (e *InvalidCorpusConfigError) Unwrap() error { return ErrInvalidCorpusConfig }

// IsValid returns whether every pattern is a valid doublestar glob.
func (c BatchConfig) IsValid() (bool, []error) {
	var errs []error
	for _, p := range c.Patterns {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, &InvalidPatternError{Value: p})
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidBatchConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidBatchConfigError.
func (e *InvalidBatchConfigError) Error() string {
	return fmt.Sprintf("invalid batch config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidBatchConfig for errors.Is() compatibility.
func (e *InvalidBatchConfigError) Unwrap() error { return ErrInvalidBatchConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		return false, []error{&InvalidUIConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to the IsValid method of every section.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, check := range []func() (bool, []error){
		c.Compiler.IsValid,
		c.Corpus.IsValid,
		c.Batch.IsValid,
		c.UI.IsValid,
	} {
		if valid, fieldErrs := check(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the FilePath.
func (p FilePath) String() string { return string(p) }

// IsValid returns whether the FilePath is valid.
// The zero value ("") is valid; non-zero values must not be whitespace-only.
func (p FilePath) IsValid() (bool, []error) {
	if p != "" && strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidFilePathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidFilePathError.
func (e *InvalidFilePathError) Error() string {
	return fmt.Sprintf("invalid file path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidFilePath for errors.Is() compatibility.
func (e *InvalidFilePathError) Unwrap() error { return ErrInvalidFilePath }

// Error implements the error interface for InvalidTimeoutError.
func (e *InvalidTimeoutError) Error() string {
	return fmt.Sprintf("invalid compile timeout %s: must not be negative", e.Value)
}

// Unwrap returns ErrInvalidTimeout for errors.Is() compatibility.
func (e *InvalidTimeoutError) Unwrap() error { return ErrInvalidTimeout }

// Error implements the error interface for InvalidPatternError.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid file pattern %q", e.Value)
}

// Unwrap returns ErrInvalidPattern for errors.Is() compatibility.
func (e *InvalidPatternError) Unwrap() error { return ErrInvalidPattern }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Compiler: CompilerConfig{
			Target:  compiler.DefaultTarget,
			Timeout: DefaultCompileTimeout,
		},
		Corpus: CorpusConfig{
			Category: DefaultCategory,
		},
		Batch: BatchConfig{
			Patterns: pipeline.DefaultPatterns(),
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}
