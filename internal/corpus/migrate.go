// SPDX-License-Identifier: MPL-2.0

package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// CurrentVersion is the schema version this binary writes.
const CurrentVersion = 2

// migrations[i] moves the schema from version i to version i+1.
var migrations = []func(ctx context.Context, tx *sql.Tx) error{
	createTables,
	createIndexes,
}

func createTables(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE ShaderBytes (
		Category TEXT NOT NULL,
		ShaderName TEXT NOT NULL,
		ShaderStage TEXT NOT NULL,
		BytesType TEXT NOT NULL,
		Bytes BLOB NOT NULL,
		SHA256 BLOB NOT NULL
	)`)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `CREATE TABLE ShaderDisasm (
		Category TEXT NOT NULL,
		ShaderName TEXT NOT NULL,
		ShaderStage TEXT NOT NULL,
		DisasmType TEXT NOT NULL,
		Disasm TEXT NOT NULL
	)`)
	return err
}

func createIndexes(ctx context.Context, tx *sql.Tx) error {
	for _, stmt := range []string{
		`CREATE INDEX ShaderBytesByName ON ShaderBytes (Category, ShaderName, ShaderStage)`,
		`CREATE INDEX ShaderBytesByDigest ON ShaderBytes (SHA256)`,
		`CREATE INDEX ShaderDisasmByName ON ShaderDisasm (Category, ShaderName, ShaderStage)`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// migrate applies every pending migration in order.
func (s *Store) migrate(ctx context.Context) error {
	for s.version < CurrentVersion {
		next := s.version + 1
		if err := s.pushVersion(ctx, migrations[s.version], next); err != nil {
			return fmt.Errorf("migrating corpus to version %d: %w", next, err)
		}
		slog.Debug("migrated corpus database", "version", next)
	}
	return nil
}

// pushVersion runs one migration and records the new version in the same
// transaction.
func (s *Store) pushVersion(ctx context.Context, step func(context.Context, *sql.Tx) error, version int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := step(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	// PRAGMA does not accept bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.version = version
	return nil
}
