// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fxodeps/fxodeps/internal/amdil"
	"github.com/fxodeps/fxodeps/internal/compiler"
	"github.com/fxodeps/fxodeps/internal/dxbc"
	"github.com/fxodeps/fxodeps/internal/gsfx"
	"github.com/fxodeps/fxodeps/internal/report"
	"github.com/fxodeps/fxodeps/internal/scalar"

	"github.com/charmbracelet/log"
)

type (
	// Analyzer compiles and analyzes the stages of container files.
	Analyzer struct {
		Compiler compiler.Compiler
		Target   compiler.Target
		// Logger receives per-stage progress lines. May be nil.
		Logger *log.Logger
	}

	// StageResult is the outcome of analyzing one stage blob.
	StageResult struct {
		Blob gsfx.Blob
		// Bytecode is the SHDR/SHEX chunk of the blob's DXBC container.
		Bytecode []byte
		Disasm   string
		Program  *scalar.Program
		Deps     *scalar.DependencySet
	}

	// FileResult holds the analyzed stages of one file, in stage order.
	FileResult struct {
		Path   string
		Kind   gsfx.FileKind
		Stages []StageResult
	}
)

// Report renders the stage's dependency report.
func (r *StageResult) Report(opts ...report.Option) string {
	return report.Render(r.Deps, r.Program.IO, opts...)
}

// ReadFile reads path and returns its stage blobs according to its extension.
func ReadFile(path string) (gsfx.FileKind, []gsfx.Blob, error) {
	kind, err := gsfx.DetectFileKind(path)
	if err != nil {
		return 0, nil, err
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	blobs, err := gsfx.ParseFile(kind, buf)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", path, err)
	}
	return kind, blobs, nil
}

// AnalyzeFile reads, compiles, decodes and accumulates every stage of path.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*FileResult, error) {
	kind, blobs, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	res := &FileResult{Path: path, Kind: kind}
	for _, blob := range blobs {
		sr, err := a.AnalyzeBlob(ctx, path, blob)
		if err != nil {
			return nil, err
		}
		res.Stages = append(res.Stages, *sr)
	}
	return res, nil
}

// AnalyzeBlob runs the compile, decode and accumulate steps on one blob.
// path is used for error context and logging only.
func (a *Analyzer) AnalyzeBlob(ctx context.Context, path string, blob gsfx.Blob) (*StageResult, error) {
	sr, err := a.Disassemble(ctx, path, blob)
	if err != nil {
		return nil, err
	}
	prog, err := amdil.Decode(sr.Disasm)
	if err != nil {
		return nil, &StageError{Path: path, Stage: blob.Stage, Step: StepDecode, Err: err}
	}
	sr.Program = prog
	sr.Deps = scalar.Accumulate(prog.Actions)

	slog.Debug("analyzed stage", "path", path, "stage", blob.Stage,
		"actions", len(prog.Actions), "outputs", len(sr.Deps.Outputs()))
	return sr, nil
}

// Disassemble extracts the program chunk of blob and compiles it to AMDIL
// text without decoding it.
func (a *Analyzer) Disassemble(ctx context.Context, path string, blob gsfx.Blob) (*StageResult, error) {
	bytecode, err := dxbc.ShaderBytecode(blob.Bytes)
	if err != nil {
		return nil, &StageError{Path: path, Stage: blob.Stage, Step: StepExtract, Err: err}
	}
	if a.Logger != nil {
		a.Logger.Info("compiling", "file", path, "stage", blob.Stage, "bytes", len(bytecode))
	}
	text, err := a.Compiler.Compile(ctx, bytecode, a.Target.OrDefault())
	if err != nil {
		return nil, &StageError{Path: path, Stage: blob.Stage, Step: StepCompile, Err: err}
	}
	return &StageResult{Blob: blob, Bytecode: bytecode, Disasm: text}, nil
}
