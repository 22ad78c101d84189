// SPDX-License-Identifier: MPL-2.0

// Package gsfx decodes the GSFX shader container and its GSVS (vertex) and
// GSPS (fragment) stage containers.
//
// A .fxo file holds one GSFX record that locates a GSVS and a GSPS
// sub-container; .vso and .pso files hold a single stage container at the top
// level. Each stage container wraps one DXBC bytecode blob.
//
// Parsing is purely structural: fixed-width little-endian reads at fixed
// offsets, a magic check, then a slice. Returned blobs alias the input buffer
// and are never copied; callers must not mutate the buffer while blobs are in
// use.
package gsfx
