// SPDX-License-Identifier: MPL-2.0

package gsfx

import (
	"errors"
	"testing"
)

func TestParseStage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Stage
		wantErr bool
	}{
		{in: "Vertex", want: StageVertex},
		{in: "fragment", want: StageFragment},
		{in: " FRAGMENT ", want: StageFragment},
		{in: "Geometry", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseStage(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStage(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidStage) {
				t.Errorf("ParseStage(%q) error does not wrap ErrInvalidStage", tt.in)
			}
			if got != tt.want {
				t.Errorf("ParseStage(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStage_StringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []Stage{StageVertex, StageFragment} {
		got, err := ParseStage(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStage(%q) = %v, %v; want %v", s.String(), got, err, s)
		}
		if valid, errs := s.IsValid(); !valid {
			t.Errorf("%v.IsValid() = false, %v", s, errs)
		}
	}
	if valid, _ := Stage(9).IsValid(); valid {
		t.Error("Stage(9).IsValid() = true, want false")
	}
}

func TestDetectFileKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    FileKind
		wantErr bool
	}{
		{name: "shaders/skin.fxo", want: FileEffect},
		{name: "SKY.VSO", want: FileVertex},
		{name: "water.pso", want: FileFragment},
		{name: "readme.txt", wantErr: true},
		{name: "noext", wantErr: true},
	}
	for _, tt := range tests {
		got, err := DetectFileKind(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("DetectFileKind(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("DetectFileKind(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestShaderName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"/data/fxo/skin.fxo":        "skin",
		"skin.opaque.fxo":           "skin",
		"relative/dir/water_ps.pso": "water_ps",
		"noext":                     "noext",
	}
	for in, want := range tests {
		if got := ShaderName(in); got != want {
			t.Errorf("ShaderName(%q) = %q, want %q", in, got, want)
		}
	}
}
