// SPDX-License-Identifier: MPL-2.0

// Package pipeline runs the per-file workflow around the analysis core:
// read a container file, parse its stage blobs, extract the DXBC program,
// compile it to AMDIL, decode and accumulate dependencies, and optionally
// store the bytes and text in the corpus.
//
// RunBatch applies a per-file function to many files, isolating failures
// (including panics) so one bad file never stops the run, and collects a
// Summary grouped by error message.
package pipeline
