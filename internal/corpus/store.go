// SPDX-License-Identifier: MPL-2.0

package corpus

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fxodeps/fxodeps/internal/gsfx"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const (
	// BytesDXBC is DXBC container bytes as found in a shader container.
	BytesDXBC BytesKind = "DXBC"

	// TextAMDIL is AMDIL disassembly produced by the native compiler.
	TextAMDIL TextKind = "AMDIL"
)

var (
	// ErrUnsupportedVersion is returned when a database was written by a
	// newer schema than this binary understands.
	ErrUnsupportedVersion = errors.New("corpus database version not supported")
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("corpus entry not found")
	// ErrInvalidEntry is the sentinel error wrapped by InvalidEntryError.
	ErrInvalidEntry = errors.New("invalid corpus entry")
)

type (
	// BytesKind tags the format of a stored blob.
	BytesKind string

	// TextKind tags the format of stored disassembly.
	TextKind string

	// Entry identifies one shader stage within a category.
	Entry struct {
		Category string
		Shader   string
		Stage    gsfx.Stage
	}

	// Store is an open corpus database.
	Store struct {
		db      *sql.DB
		version int
	}

	// InvalidEntryError is returned when an Entry has empty or invalid fields.
	// It wraps ErrInvalidEntry for errors.Is() compatibility.
	InvalidEntryError struct {
		Entry  Entry
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid corpus entry %s/%s/%s: %s", e.Entry.Category, e.Entry.Shader, e.Entry.Stage, e.Reason)
}

// Unwrap returns ErrInvalidEntry for errors.Is() compatibility.
func (e *InvalidEntryError) Unwrap() error { return ErrInvalidEntry }

// IsValid returns whether the Entry has a category, a shader name and a
// valid stage.
func (e Entry) IsValid() (bool, []error) {
	var errs []error
	if e.Category == "" {
		errs = append(errs, &InvalidEntryError{Entry: e, Reason: "empty category"})
	}
	if e.Shader == "" {
		errs = append(errs, &InvalidEntryError{Entry: e, Reason: "empty shader name"})
	}
	if ok, _ := e.Stage.IsValid(); !ok {
		errs = append(errs, &InvalidEntryError{Entry: e, Reason: "invalid stage"})
	}
	return len(errs) == 0, errs
}

// Open opens or creates the database at path and migrates it to the
// current schema version.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	s := &Store{db: db}
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&s.version); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("reading corpus version: %w", err)
	}
	if s.version > CurrentVersion {
		_ = db.Close()
		return nil, fmt.Errorf("%w: database is version %d, this binary supports up to %d; update fxodeps",
			ErrUnsupportedVersion, s.version, CurrentVersion)
	}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Version returns the schema version of the open database.
func (s *Store) Version() int { return s.version }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// InsertBytes stores a blob and its SHA-256 digest.
func (s *Store) InsertBytes(ctx context.Context, e Entry, kind BytesKind, data []byte) error {
	if ok, errs := e.IsValid(); !ok {
		return errors.Join(errs...)
	}
	sum := sha256.Sum256(data)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ShaderBytes (Category, ShaderName, ShaderStage, BytesType, Bytes, SHA256)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Category, e.Shader, e.Stage.String(), string(kind), data, sum[:])
	if err != nil {
		return fmt.Errorf("inserting %s bytes for %s: %w", kind, e.Shader, err)
	}
	slog.Debug("stored shader bytes", "category", e.Category, "shader", e.Shader, "stage", e.Stage, "size", len(data))
	return nil
}

// InsertText stores disassembly text.
func (s *Store) InsertText(ctx context.Context, e Entry, kind TextKind, text string) error {
	if ok, errs := e.IsValid(); !ok {
		return errors.Join(errs...)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ShaderDisasm (Category, ShaderName, ShaderStage, DisasmType, Disasm)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Category, e.Shader, e.Stage.String(), string(kind), text)
	if err != nil {
		return fmt.Errorf("inserting %s text for %s: %w", kind, e.Shader, err)
	}
	return nil
}

// Text returns the most recently stored text of kind for e.
func (s *Store) Text(ctx context.Context, e Entry, kind TextKind) (string, error) {
	var text string
	err := s.db.QueryRowContext(ctx,
		`SELECT Disasm FROM ShaderDisasm
		 WHERE Category = ? AND ShaderName = ? AND ShaderStage = ? AND DisasmType = ?
		 ORDER BY rowid DESC LIMIT 1`,
		e.Category, e.Shader, e.Stage.String(), string(kind)).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying %s text for %s: %w", kind, e.Shader, err)
	}
	return text, nil
}

// LookupDigest returns every entry whose stored bytes have the given
// SHA-256 digest, in insertion order.
func (s *Store) LookupDigest(ctx context.Context, digest [sha256.Size]byte) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT Category, ShaderName, ShaderStage FROM ShaderBytes WHERE SHA256 = ? ORDER BY rowid`,
		digest[:])
	if err != nil {
		return nil, fmt.Errorf("querying digest: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var stage string
		if err := rows.Scan(&e.Category, &e.Shader, &stage); err != nil {
			return nil, fmt.Errorf("scanning digest row: %w", err)
		}
		if e.Stage, err = gsfx.ParseStage(stage); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
