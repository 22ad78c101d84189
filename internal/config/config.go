// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fxodeps/fxodeps/internal/cueutil"
	"github.com/fxodeps/fxodeps/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "fxodeps"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the fxodeps configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the path of config.cue inside ConfigDir.
func ConfigFilePath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. It returns the config and the file it came from
// ("" when only defaults apply).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("compiler.bridge", defaults.Compiler.Bridge)
	v.SetDefault("compiler.library", defaults.Compiler.Library)
	v.SetDefault("compiler.target", defaults.Compiler.Target)
	v.SetDefault("compiler.timeout", defaults.Compiler.Timeout)
	v.SetDefault("corpus.path", defaults.Corpus.Path)
	v.SetDefault("corpus.category", defaults.Corpus.Category)
	v.SetDefault("batch.patterns", defaults.Batch.Patterns)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	path, err := resolveConfigPath(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Use 'fxodeps config dump' to see a valid configuration").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// CUE checks shapes; IsValid covers what it cannot, such as glob syntax.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion("Check batch.patterns for unbalanced brackets or braces").
			Wrap(errors.Join(flattenFieldErrors(errs)...)).
			BuildError()
	}

	return &cfg, path, nil
}

// resolveConfigPath picks the file to load: the explicit --config path
// (which must exist), then config.cue in the config directory, then
// config.cue in the working directory. It returns "" when none exists.
func resolveConfigPath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'fxodeps config init' to create a default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	fileName := ConfigFileName + "." + ConfigFileExt
	for _, candidate := range []string{filepath.Join(cfgDir, fileName), fileName} {
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

// flattenFieldErrors expands the section-level wrappers produced by
// Config.IsValid into their field errors.
func flattenFieldErrors(errs []error) []error {
	var out []error
	for _, err := range errs {
		var fieldErrs []error
		switch e := err.(type) {
		case *InvalidConfigError:
			fieldErrs = e.FieldErrors
		case *InvalidCompilerConfigError:
			fieldErrs = e.FieldErrors
		case *InvalidCorpusConfigError:
			fieldErrs = e.FieldErrors
		case *InvalidBatchConfigError:
			fieldErrs = e.FieldErrors
		case *InvalidUIConfigError:
			fieldErrs = e.FieldErrors
		default:
			out = append(out, err)
			continue
		}
		out = append(out, flattenFieldErrors(fieldErrs)...)
	}
	return out
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
//
// The file decodes into a map rather than a struct so that Viper keeps its
// defaults for fields the file leaves unset.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default config file unless one exists.
// It returns the path of the config file.
func CreateDefaultConfig() (string, error) {
	cfgPath, err := ConfigFilePath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, nil
	}

	return cfgPath, writeConfig(cfgPath, DefaultConfig())
}

// Save writes cfg to the config file, replacing any existing one.
func Save(cfg *Config) error {
	cfgPath, err := ConfigFilePath()
	if err != nil {
		return err
	}
	return writeConfig(cfgPath, cfg)
}

func writeConfig(cfgPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateCUE generates a CUE representation of the configuration.
// Empty optional paths are omitted.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// fxodeps configuration file\n\n")

	sb.WriteString("compiler: {\n")
	if cfg.Compiler.Bridge != "" {
		fmt.Fprintf(&sb, "\tbridge: %q\n", cfg.Compiler.Bridge)
	}
	if cfg.Compiler.Library != "" {
		fmt.Fprintf(&sb, "\tlibrary: %q\n", cfg.Compiler.Library)
	}
	if cfg.Compiler.Target != "" {
		fmt.Fprintf(&sb, "\ttarget: %q\n", cfg.Compiler.Target)
	}
	fmt.Fprintf(&sb, "\ttimeout: %q\n", cfg.Compiler.Timeout.String())
	sb.WriteString("}\n")

	sb.WriteString("\ncorpus: {\n")
	if cfg.Corpus.Path != "" {
		fmt.Fprintf(&sb, "\tpath: %q\n", cfg.Corpus.Path)
	}
	if cfg.Corpus.Category != "" {
		fmt.Fprintf(&sb, "\tcategory: %q\n", cfg.Corpus.Category)
	}
	sb.WriteString("}\n")

	sb.WriteString("\nbatch: {\n")
	sb.WriteString("\tpatterns: [")
	for i, p := range cfg.Batch.Patterns {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q", p)
	}
	sb.WriteString("]\n")
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}
