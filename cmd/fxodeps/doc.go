// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the fxodeps command line interface.
//
// The root command loads configuration, installs a charmbracelet/log logger
// as the slog default and dispatches to analyze, inspect, batch, extract and
// config. Command handlers delegate to internal/pipeline through an App.
package cmd
