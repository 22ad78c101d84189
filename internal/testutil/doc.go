// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include environment variable management (MustSetenv, MustUnsetenv),
// file and directory operations (MustChdir, MustMkdirAll, MustWriteFile,
// MustReadFile), and resource cleanup (MustClose, DeferClose). Synthetic
// shader containers live in the gsfxtest subpackage.
package testutil
