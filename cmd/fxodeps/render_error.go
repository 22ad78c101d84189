// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/fxodeps/fxodeps/internal/amdil"
	"github.com/fxodeps/fxodeps/internal/compiler"
	"github.com/fxodeps/fxodeps/internal/config"
	"github.com/fxodeps/fxodeps/internal/corpus"
	"github.com/fxodeps/fxodeps/internal/dxbc"
	"github.com/fxodeps/fxodeps/internal/gsfx"
	"github.com/fxodeps/fxodeps/internal/issue"

	"github.com/charmbracelet/lipgloss"
)

// issueFor maps an error chain to the catalogue entry that explains it.
// It returns 0 when no entry applies.
func issueFor(err error) issue.Id {
	switch {
	case errors.Is(err, compiler.ErrBridgeNotConfigured):
		return issue.CompilerBridgeNotConfiguredId
	case errors.Is(err, compiler.ErrCompileFailed):
		return issue.CompileFailedId
	case errors.Is(err, amdil.ErrDecodeFailed):
		return issue.DecodeFailedId
	case errors.Is(err, gsfx.ErrMalformedContainer), errors.Is(err, dxbc.ErrMalformedDXBC),
		errors.Is(err, gsfx.ErrUnknownFileKind):
		return issue.MalformedContainerId
	case errors.Is(err, corpus.ErrUnsupportedVersion):
		return issue.CorpusVersionUnsupportedId
	case errors.Is(err, fs.ErrNotExist):
		return issue.FileNotFoundId
	case errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId
	default:
		return 0
	}
}

// actionable wraps err with the operation and resource it failed on, unless
// it already carries that context.
func actionable(err error, operation, resource string) error {
	if _, ok := errors.AsType[*issue.ActionableError](err); ok {
		return err
	}
	return issue.WrapWithContext(err, operation, resource, issueFor(err))
}

// renderError writes err for the user. Actionable errors show their
// suggestions; in verbose mode the error chain and the catalogue guidance
// follow.
func renderError(w io.Writer, err error, verbose bool, scheme config.ColorScheme) {
	ae, ok := errors.AsType[*issue.ActionableError](err)
	if !ok {
		fmt.Fprintln(w, ErrorStyle.Render("Error: ")+err.Error())
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(verbose))
	if !verbose {
		return
	}
	guide := ae.Guidance()
	if guide == nil {
		guide = issue.Get(issueFor(ae.Cause))
	}
	if guide == nil {
		return
	}
	rendered, renderErr := guide.Render(glamourStyle(scheme))
	if renderErr != nil {
		slog.Warn("failed to render issue catalogue entry", "issueID", guide.Id(), "error", renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}

// glamourStyle maps the configured color scheme to a glamour standard style.
func glamourStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	default:
		if lipgloss.HasDarkBackground() {
			return "dark"
		}
		return "light"
	}
}

// fail renders err and returns the ExitError the command should return.
func (a *App) fail(err error) error {
	renderError(a.stderr, err, a.verbose, a.settings().UI.ColorScheme)
	return &ExitError{Code: ExitFailure}
}
