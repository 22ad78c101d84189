// SPDX-License-Identifier: MPL-2.0

// Package amdil decodes AMD IL disassembly text into a scalar.Program.
//
// Each instruction is split into one scalar.Dependency per written
// component. Component-wise instructions map destination lane i to lane i
// of each source swizzle. Dot products read the first N lanes of every
// source. Resource instructions (sample, load, gather) read every lane.
// Declarations of inputs, outputs and literal registers become
// scalar.Declaration actions, and conditional discards become
// scalar.EarlyOut actions. Structured control flow is skipped.
package amdil
