// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()

		if err := FormatError(nil, "config.cue"); err != nil {
			t.Errorf("FormatError(nil) = %v, want nil", err)
		}
	})

	t.Run("non-CUE error is wrapped with file path", func(t *testing.T) {
		t.Parallel()

		orig := errors.New("some error")
		err := FormatError(orig, "config.cue")
		if !errors.Is(err, orig) {
			t.Errorf("FormatError() = %v, want it to wrap %v", err, orig)
		}
		if !strings.HasPrefix(err.Error(), "config.cue: ") {
			t.Errorf("FormatError() = %q, want config.cue prefix", err)
		}
	})

	t.Run("CUE error carries field path", func(t *testing.T) {
		t.Parallel()

		ctx := cuecontext.New()
		schema := ctx.CompileString(`#C: {batch: {patterns: [...string]}}`).LookupPath(cue.ParsePath("#C"))
		val := ctx.CompileString(`batch: patterns: [42]`)
		verr := schema.Unify(val).Validate()
		if verr == nil {
			t.Fatal("Validate() = nil, want error")
		}

		err := FormatError(verr, "config.cue")
		if !strings.Contains(err.Error(), "batch.patterns[0]") {
			t.Errorf("FormatError() = %q, want path batch.patterns[0]", err)
		}
	})
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path []string
		want string
	}{
		{"empty", nil, ""},
		{"single", []string{"compiler"}, "compiler"},
		{"nested", []string{"compiler", "target"}, "compiler.target"},
		{"index", []string{"batch", "patterns", "2"}, "batch.patterns[2]"},
		{"leading digits stay a field", []string{"0", "x"}, "0.x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := formatPath(tt.path); got != tt.want {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 10), 10, "a.cue"); err != nil {
		t.Errorf("CheckFileSize(10, max 10) = %v, want nil", err)
	}
	err := CheckFileSize(make([]byte, 11), 10, "a.cue")
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum 10 bytes") {
		t.Errorf("CheckFileSize(11, max 10) = %v, want size error", err)
	}
}
