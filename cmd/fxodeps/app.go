// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fxodeps/fxodeps/internal/compiler"
	"github.com/fxodeps/fxodeps/internal/config"
	"github.com/fxodeps/fxodeps/internal/corpus"
	"github.com/fxodeps/fxodeps/internal/pipeline"

	"github.com/charmbracelet/log"
)

type (
	// CompilerFactory builds the compiler used for a run from the effective
	// compiler settings.
	CompilerFactory func(cfg config.CompilerConfig) compiler.Compiler

	// StoreOpener opens the corpus store at path.
	StoreOpener func(ctx context.Context, path string) (*corpus.Store, error)

	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App and
	// delegates through it.
	App struct {
		Config      config.Provider
		NewCompiler CompilerFactory
		OpenStore   StoreOpener
		stdout      io.Writer
		stderr      io.Writer

		// Per-invocation state, set by the root command's flags and
		// PersistentPreRunE.
		configPath string
		verbose    bool
		cfg        *config.Config
		logger     *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config      config.Provider
		NewCompiler CompilerFactory
		OpenStore   StoreOpener
		Stdout      io.Writer
		Stderr      io.Writer
	}
)

// NewApp builds an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:      deps.Config,
		NewCompiler: deps.NewCompiler,
		OpenStore:   deps.OpenStore,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.NewCompiler == nil {
		app.NewCompiler = newBridge
	}
	if app.OpenStore == nil {
		app.OpenStore = corpus.Open
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

func newBridge(cfg config.CompilerConfig) compiler.Compiler {
	return compiler.NewBridge(cfg.Bridge.String(), cfg.Library.String(), compiler.WithTimeout(cfg.Timeout))
}

// loadOptions returns the provider options for the current invocation.
func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.configPath}
}

// setup loads configuration and installs the logger. The --verbose flag wins
// over ui.verbose when set.
func (a *App) setup(ctx context.Context) error {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return err
	}
	a.cfg = cfg
	if !a.verbose {
		a.verbose = cfg.UI.Verbose
	}

	level := log.InfoLevel
	if a.verbose {
		level = log.DebugLevel
	}
	a.logger = log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
	slog.SetDefault(slog.New(a.logger))
	return nil
}

// settings returns the loaded configuration, or defaults before setup ran.
func (a *App) settings() *config.Config {
	if a.cfg == nil {
		return config.DefaultConfig()
	}
	return a.cfg
}

// analyzer builds a pipeline.Analyzer from the loaded configuration with
// the command line overrides applied.
func (a *App) analyzer(flags compilerFlags) *pipeline.Analyzer {
	cc := flags.apply(a.settings().Compiler)
	return &pipeline.Analyzer{
		Compiler: a.NewCompiler(cc),
		Target:   cc.Target,
		Logger:   a.logger,
	}
}
