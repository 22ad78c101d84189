// SPDX-License-Identifier: MPL-2.0

// Package scalar models a decoded shader program as an ordered stream of
// single-component actions and folds that stream into per-location data
// dependencies.
//
// A decoder (see package amdil) turns disassembly into a Program: a list of
// Declaration, Dependency and EarlyOut actions over scalar Locations, plus
// the program's input/output declarations. Accumulate replays the actions in
// program order and returns a DependencySet mapping every written location
// to the locations and literals that can contribute to its final value.
//
// The accumulator never rejects input. Locations that were never declared
// are treated as fresh sources, and a location written more than once keeps
// the union of every write's sources.
package scalar
