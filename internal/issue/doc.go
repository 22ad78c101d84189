// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions. Catalogued issues hold longer Markdown guidance that the CLI
// renders with glamour under --verbose.
package issue
