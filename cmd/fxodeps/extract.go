// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"

	"github.com/fxodeps/fxodeps/internal/issue"
	"github.com/fxodeps/fxodeps/internal/pipeline"

	"github.com/spf13/cobra"
)

type extractOptions struct {
	compiler compilerFlags
	patterns []string
	summary  string
}

func newExtractCommand(app *App) *cobra.Command {
	var opts extractOptions
	cmd := &cobra.Command{
		Use:   "extract <dir> <category> <db>",
		Short: "Store the bytecode and AMDIL of every shader file in a corpus database",
		Long: `Store each stage of every matching file under <dir> in the SQLite corpus at
<db>, keyed by <category>, the shader name (the file name up to its first
dot) and the stage. The DXBC bytes are stored before compiling, so a stage
that fails to compile still has its bytes in the corpus.

<category> and <db> may be given as "-" to use corpus.category and
corpus.path from the configuration.

The command exits with status 2 when some files failed.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.compiler.validate(); err != nil {
				return app.fail(err)
			}
			category, dbPath, err := app.corpusTarget(args[1], args[2])
			if err != nil {
				return app.fail(err)
			}
			files, err := app.findInputs(args[0], opts.patterns)
			if err != nil {
				return app.fail(err)
			}

			store, err := app.OpenStore(cmd.Context(), dbPath)
			if err != nil {
				return app.fail(actionable(err, "open corpus", dbPath))
			}
			defer func() {
				if cerr := store.Close(); cerr != nil {
					app.logger.Warn("closing corpus", "path", dbPath, "err", cerr)
				}
			}()

			ex := &pipeline.Extractor{Analyzer: app.analyzer(opts.compiler), Store: store, Category: category}
			summary := pipeline.RunBatch(cmd.Context(), files, func(ctx context.Context, path string) error {
				return ex.ExtractFile(ctx, path)
			}, pipeline.WithLogger(app.logger))

			if opts.summary != "" {
				if err := summary.WriteFile(opts.summary); err != nil {
					return app.fail(actionable(err, "write summary report", opts.summary))
				}
			}
			return app.finishRun(summary, "extracted", dbPath)
		},
	}

	opts.compiler.register(cmd)
	registerPatternFlag(cmd, &opts.patterns)
	cmd.Flags().StringVar(&opts.summary, "summary", "", "also write the run summary to this file (.toml for TOML)")
	return cmd
}

// corpusTarget resolves the "-" placeholders of the category and database
// arguments from the corpus.* configuration.
func (a *App) corpusTarget(category, dbPath string) (string, string, error) {
	cc := a.settings().Corpus
	if category == "-" {
		category = cc.Category
	}
	if dbPath == "-" {
		dbPath = cc.Path.String()
	}
	if category == "" || dbPath == "" {
		return "", "", issue.NewErrorContext().
			WithOperation("resolve corpus").
			WithSuggestions(
				"Pass the category and database path explicitly",
				"Or set corpus.category and corpus.path in the config file",
			).
			Wrap(errors.New("corpus category and database path are required")).
			BuildError()
	}
	return category, dbPath, nil
}
