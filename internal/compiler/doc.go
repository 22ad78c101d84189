// SPDX-License-Identifier: MPL-2.0

// Package compiler turns shader bytecode into AMDIL disassembly text.
//
// The native vendor compiler is a Windows library that cannot be loaded into
// a Go process, so Bridge drives it through an external helper executable:
//
//	<bridge> [args...] --library <native-lib> --target <device>
//
// The bytecode is written to the helper's stdin and the AMDIL text is read
// from its stdout. Func adapts an in-process function, which is how tests
// and alternative backends are injected.
package compiler
