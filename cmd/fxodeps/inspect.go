// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"crypto/sha256"
	"fmt"
	"io"
	"strings"

	"github.com/fxodeps/fxodeps/internal/dxbc"
	"github.com/fxodeps/fxodeps/internal/gsfx"
	"github.com/fxodeps/fxodeps/internal/pipeline"

	"github.com/spf13/cobra"
)

func newInspectCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "List the stage blobs of a container without compiling them",
		Long: `Parse a .fxo, .vso or .pso file and print, for each stage blob, its offset,
size and SHA-256 digest together with the chunks of its DXBC container.
No compiler is needed.`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, blobs, err := pipeline.ReadFile(args[0])
			if err != nil {
				return app.fail(actionable(err, "inspect container", args[0]))
			}
			return writeInspection(app.stdout, args[0], kind, blobs)
		},
	}
}

func writeInspection(w io.Writer, path string, kind gsfx.FileKind, blobs []gsfx.Blob) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", TitleStyle.Render(gsfx.ShaderName(path)), SubtitleStyle.Render("("+kind.String()+")"))
	for _, blob := range blobs {
		sum := sha256.Sum256(blob.Bytes)
		fmt.Fprintf(&b, "  %s offset %d, %d bytes, sha256 %x\n",
			KeyStyle.Render(fmt.Sprintf("%-8s", blob.Stage)), blob.Offset, blob.Len(), sum)

		c, err := dxbc.Parse(blob.Bytes)
		if err != nil {
			fmt.Fprintf(&b, "    %s\n", WarningStyle.Render(err.Error()))
			continue
		}
		fourCCs := make([]string, len(c.Chunks))
		for i, ch := range c.Chunks {
			fourCCs[i] = fmt.Sprintf("%s(%d)", ch.FourCC, len(ch.Data))
		}
		fmt.Fprintf(&b, "    dxbc %d bytes, chunks %s\n", c.Size, strings.Join(fourCCs, " "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
