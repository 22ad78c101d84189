// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fxodeps/fxodeps/internal/config"
	"github.com/fxodeps/fxodeps/internal/issue"
	"github.com/fxodeps/fxodeps/internal/pipeline"

	"github.com/spf13/cobra"
)

type batchOptions struct {
	compiler compilerFlags
	patterns []string
}

func newBatchCommand(app *App) *cobra.Command {
	var opts batchOptions
	cmd := &cobra.Command{
		Use:   "batch <dir> <report>",
		Short: "Compile and analyze every shader file in a directory",
		Long: `Compile and analyze every file under <dir> that matches the batch patterns.
A failing file does not stop the run. The summary groups failed files by
error message and is written to <report>, as TOML when the name ends in
.toml and as plain text otherwise.

The command exits with status 2 when some files failed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.compiler.validate(); err != nil {
				return app.fail(err)
			}
			files, err := app.findInputs(args[0], opts.patterns)
			if err != nil {
				return app.fail(err)
			}

			analyzer := app.analyzer(opts.compiler)
			summary := pipeline.RunBatch(cmd.Context(), files, func(ctx context.Context, path string) error {
				_, err := analyzer.AnalyzeFile(ctx, path)
				return err
			}, pipeline.WithLogger(app.logger))

			if err := summary.WriteFile(args[1]); err != nil {
				return app.fail(actionable(err, "write summary report", args[1]))
			}
			return app.finishRun(summary, "analyzed", args[1])
		},
	}

	opts.compiler.register(cmd)
	registerPatternFlag(cmd, &opts.patterns)
	return cmd
}

func registerPatternFlag(cmd *cobra.Command, patterns *[]string) {
	cmd.Flags().StringArrayVar(patterns, "pattern", nil,
		"doublestar glob of files to process, relative to <dir> (repeatable, overrides batch.patterns)")
}

// findInputs lists the files under dir matching patterns, or the configured
// batch patterns when none are given. Finding no file is an error.
func (a *App) findInputs(dir string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = a.settings().Batch.Patterns
	}
	if ok, errs := (config.BatchConfig{Patterns: patterns}).IsValid(); !ok {
		return nil, issue.NewErrorContext().
			WithOperation("scan for shader files").
			WithResource(dir).
			WithSuggestion("Check the --pattern values for unbalanced brackets or braces").
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	files, err := pipeline.FindFiles(dir, patterns)
	if err != nil {
		return nil, actionable(err, "scan for shader files", dir)
	}
	if len(files) == 0 {
		return nil, issue.NewErrorContext().
			WithOperation("scan for shader files").
			WithResource(dir).
			WithSuggestion(fmt.Sprintf("No file matched %v", patterns)).
			WithIssue(issue.NoShaderFilesId).
			BuildError()
	}
	return files, nil
}

// finishRun prints the styled summary of a batch or extract run and returns
// ExitPartial when some files failed.
func (a *App) finishRun(summary *pipeline.Summary, verb, destination string) error {
	writeSummary(a.stdout, summary, verb, destination)
	if summary.Failed() > 0 {
		return &ExitError{Code: ExitPartial}
	}
	return nil
}

func writeSummary(w io.Writer, summary *pipeline.Summary, verb, destination string) {
	body := fmt.Sprintf("%s %d of %d files",
		TitleStyle.Render(verb), len(summary.Succeeded), summary.Total())
	if n := summary.Failed(); n > 0 {
		body += "\n" + ErrorStyle.Render(fmt.Sprintf("%d failed", n))
		for _, g := range summary.Failures() {
			body += fmt.Sprintf("\n  %s %s", WarningStyle.Render(fmt.Sprintf("%3d×", len(g.Files))), g.Message)
		}
	} else {
		body += "\n" + SuccessStyle.Render("no failures")
	}
	body += "\n" + SubtitleStyle.Render("→ "+destination)
	fmt.Fprintln(w, summaryBoxStyle.Render(body))
}
