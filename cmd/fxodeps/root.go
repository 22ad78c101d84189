// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// annotationConfigOptional marks commands that still run, with defaults,
// when the config file cannot be loaded.
const annotationConfigOptional = "fxodeps/config-optional"

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "fxodeps",
		Short: "Scalar dependency reports for compiled shader containers",
		Long: TitleStyle.Render("fxodeps") + SubtitleStyle.Render(" - scalar dependency reports for compiled shader containers") + `

fxodeps reads GSFX effect containers (.fxo) and single-stage GSVS/GSPS
containers (.vso/.pso), compiles each stage's DXBC bytecode to AMDIL through
an external compiler bridge and reports, for every output component, which
inputs, temporaries, constants and literals can influence its value.

` + SubtitleStyle.Render("Examples:") + `
  fxodeps inspect water.fxo                 List the stages of a container
  fxodeps analyze water.fxo                 Print the dependency report
  fxodeps batch ./shaders report.toml       Analyze a directory, summarize failures
  fxodeps extract ./shaders retail db.sqlite
                                            Store bytecode and AMDIL in a corpus
  fxodeps config init                       Create a default configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := app.setup(cmd.Context())
			if err == nil {
				return nil
			}
			if cmd.Annotations[annotationConfigOptional] != "" {
				fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+err.Error())
				return nil
			}
			return app.fail(err)
		},
	}

	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/fxodeps/config.cue)")

	root.AddCommand(
		newAnalyzeCommand(app),
		newInspectCommand(app),
		newBatchCommand(app),
		newExtractCommand(app),
		newConfigCommand(app),
	)
	return root
}

// getVersionString returns a formatted version string for display.
// Binaries built with ldflags report those values; go-installed binaries
// fall back to the module version from the build info.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute runs the CLI and exits the process with the command's status.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		if exitErr, ok := errors.AsType[*ExitError](err); ok {
			os.Exit(exitErr.Code)
		}
		os.Exit(ExitFailure)
	}
}
