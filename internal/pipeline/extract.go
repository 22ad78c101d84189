// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"

	"github.com/fxodeps/fxodeps/internal/corpus"
	"github.com/fxodeps/fxodeps/internal/gsfx"
)

// Extractor stores each stage's DXBC bytes and AMDIL text in the corpus.
type Extractor struct {
	Analyzer *Analyzer
	Store    *corpus.Store
	// Category groups the stored shaders ("yk2", "kenzan").
	Category string
}

// ExtractFile stores every stage of path under the shader name derived from
// its file name. The DXBC bytes of a stage are stored before it is compiled,
// so a compile failure still leaves the bytes in the corpus.
func (e *Extractor) ExtractFile(ctx context.Context, path string) error {
	_, blobs, err := ReadFile(path)
	if err != nil {
		return err
	}

	name := gsfx.ShaderName(path)
	for _, blob := range blobs {
		entry := corpus.Entry{Category: e.Category, Shader: name, Stage: blob.Stage}
		if err := e.Store.InsertBytes(ctx, entry, corpus.BytesDXBC, blob.Bytes); err != nil {
			return &StageError{Path: path, Stage: blob.Stage, Step: StepStore, Err: err}
		}
		sr, err := e.Analyzer.Disassemble(ctx, path, blob)
		if err != nil {
			return err
		}
		if err := e.Store.InsertText(ctx, entry, corpus.TextAMDIL, sr.Disasm); err != nil {
			return &StageError{Path: path, Stage: blob.Stage, Step: StepStore, Err: err}
		}
	}
	return nil
}
