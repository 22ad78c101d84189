// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPatterns match every container file kind directly inside a directory.
func DefaultPatterns() []string {
	return []string{"*.fxo", "*.vso", "*.pso"}
}

// FindFiles returns the regular files under root matching any of patterns,
// sorted and without duplicates. Patterns are doublestar globs relative to
// root ("**/*.fxo" recurses).
func FindFiles(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}
	fsys := os.DirFS(root)

	var files []string
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("invalid file pattern %q", pat)
		}
		matches, err := doublestar.Glob(fsys, pat, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("matching %q under %s: %w", pat, root, err)
		}
		for _, m := range matches {
			files = append(files, filepath.Join(root, filepath.FromSlash(m)))
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
