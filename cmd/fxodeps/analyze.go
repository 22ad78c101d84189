// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/fxodeps/fxodeps/internal/pipeline"
	"github.com/fxodeps/fxodeps/internal/report"

	"github.com/spf13/cobra"
)

type analyzeOptions struct {
	compiler compilerFlags
	kinds    bool
	disasm   bool
}

func newAnalyzeCommand(app *App) *cobra.Command {
	var opts analyzeOptions
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Print the dependency report of every stage of a container",
		Long: `Compile each stage of a .fxo, .vso or .pso file to AMDIL and print, for every
output component, the sources that can contribute to its value.

Each report lists the declared inputs and outputs, the guards of any discard,
then one line per output register group:

  o0.xy depends on [r0.w, v1.xy, cb0[2].x] literals [0x3F800000]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.compiler.validate(); err != nil {
				return app.fail(err)
			}
			res, err := app.analyzer(opts.compiler).AnalyzeFile(cmd.Context(), args[0])
			if err != nil {
				return app.fail(actionable(err, "analyze shader", args[0]))
			}
			return writeAnalysis(app.stdout, res, opts)
		},
	}

	opts.compiler.register(cmd)
	cmd.Flags().BoolVar(&opts.kinds, "kinds", false, "annotate register groups with the value kinds they are used with")
	cmd.Flags().BoolVar(&opts.disasm, "disasm", false, "print the AMDIL text before each report")
	return cmd
}

func writeAnalysis(w io.Writer, res *pipeline.FileResult, opts analyzeOptions) error {
	var ropts []report.Option
	if opts.kinds {
		ropts = append(ropts, report.WithKinds())
	}

	for i, sr := range res.Stages {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		header := TitleStyle.Render(sr.Blob.Stage.String()) +
			SubtitleStyle.Render(fmt.Sprintf(" stage, %d bytes at offset %d", sr.Blob.Len(), sr.Blob.Offset))
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		if opts.disasm {
			if _, err := fmt.Fprintln(w, SubtitleStyle.Render(sr.Disasm)); err != nil {
				return err
			}
		}
		if err := report.Write(w, sr.Deps, sr.Program.IO, ropts...); err != nil {
			return err
		}
	}
	return nil
}
