// SPDX-License-Identifier: MPL-2.0

// Package report regroups scalar dependencies into register-level vector
// groups and renders the per-output dependency report.
//
// Rendering is deterministic: outputs, groups, literals, guards and I/O
// declarations are all emitted in canonical order, so rendering the same
// DependencySet twice yields byte-identical text.
package report
