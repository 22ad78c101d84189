// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fxodeps/fxodeps/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `fxodeps config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage fxodeps configuration",
		Long: `Manage fxodeps configuration.

Configuration is stored in:
  - Linux: ~/.config/fxodeps/config.cue
  - macOS: ~/Library/Application Support/fxodeps/config.cue
  - Windows: %APPDATA%\fxodeps\config.cue

A config.cue in the working directory is used when the file above is
missing, and --config overrides both.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := app.Config.Path(app.loadOptions())
			if err != nil {
				return app.fail(err)
			}
			return showConfig(app.stdout, path, app.settings())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:         "path",
		Short:       "Show the configuration file path",
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := io.WriteString(app.stdout, config.GenerateCUE(app.settings()))
			return err
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:         "init",
		Short:       "Create the default configuration file",
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.CreateDefaultConfig()
			if err != nil {
				return app.fail(actionable(err, "create configuration", path))
			}
			fmt.Fprintf(app.stdout, "%s Configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, path string, cfg *config.Config) error {
	var b strings.Builder
	key := func(indent, name string) string { return indent + KeyStyle.Render(name) + ": " }
	value := func(v any) string {
		s := fmt.Sprint(v)
		if s == "" {
			return SubtitleStyle.Render("(not set)")
		}
		return SuccessStyle.Render(s)
	}

	b.WriteString(TitleStyle.Render("Current Configuration") + "\n\n")
	if path == "" {
		b.WriteString(key("", "Config file") + SubtitleStyle.Render("(using defaults)") + "\n")
	} else {
		b.WriteString(key("", "Config file") + path + "\n")
	}

	b.WriteString("\n" + key("", "compiler") + "\n")
	b.WriteString(key("  ", "bridge") + value(cfg.Compiler.Bridge) + "\n")
	b.WriteString(key("  ", "library") + value(cfg.Compiler.Library) + "\n")
	b.WriteString(key("  ", "target") + value(cfg.Compiler.Target) + "\n")
	b.WriteString(key("  ", "timeout") + value(cfg.Compiler.Timeout) + "\n")

	b.WriteString("\n" + key("", "corpus") + "\n")
	b.WriteString(key("  ", "path") + value(cfg.Corpus.Path) + "\n")
	b.WriteString(key("  ", "category") + value(cfg.Corpus.Category) + "\n")

	b.WriteString("\n" + key("", "batch") + "\n")
	b.WriteString(key("  ", "patterns") + value(strings.Join(cfg.Batch.Patterns, ", ")) + "\n")

	b.WriteString("\n" + key("", "ui") + "\n")
	b.WriteString(key("  ", "color_scheme") + value(cfg.UI.ColorScheme) + "\n")
	b.WriteString(key("  ", "verbose") + value(cfg.UI.Verbose) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return app.fail(err)
	}
	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)

	active, err := app.Config.Path(app.loadOptions())
	switch {
	case err != nil:
		fmt.Fprintf(app.stdout, "Active config file: %s\n", WarningStyle.Render(err.Error()))
	case active == "":
		fmt.Fprintf(app.stdout, "Active config file: %s\n", SubtitleStyle.Render("(none, using defaults)"))
	default:
		fmt.Fprintf(app.stdout, "Active config file: %s\n", active)
	}
	return nil
}
