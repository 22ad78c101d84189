// SPDX-License-Identifier: MPL-2.0

// Package corpus stores extracted shader bytecode and disassembly text in a
// SQLite database.
//
// Two tables hold the corpus: ShaderBytes (raw bytecode with its SHA-256
// digest) and ShaderDisasm (disassembly text). Rows are keyed by category,
// shader name and stage. The schema version is kept in PRAGMA user_version
// and migrated forward on Open, one transaction per version.
package corpus
