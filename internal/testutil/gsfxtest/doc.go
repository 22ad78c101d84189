// SPDX-License-Identifier: MPL-2.0

// Package gsfxtest builds synthetic GSFX, GSVS and GSPS containers, and the
// DXBC blobs they carry, for tests.
package gsfxtest
