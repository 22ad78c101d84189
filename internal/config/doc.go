// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from config.cue in the platform config directory
// (~/.config/fxodeps on Linux, ~/Library/Application Support/fxodeps on macOS,
// %APPDATA%\fxodeps on Windows), from ./config.cue, or from an explicit path.
// Files are validated against the embedded #Config schema; unset fields keep
// the values of DefaultConfig.
package config
