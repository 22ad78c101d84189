// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

type (
	// FileFunc processes one file of a batch.
	FileFunc func(ctx context.Context, path string) error

	// Summary is the outcome of a batch run.
	Summary struct {
		Succeeded []string
		// failures maps an error message to the files that failed with it.
		failures map[string][]string
	}

	// FailureGroup lists the files that failed with the same message.
	FailureGroup struct {
		Message string   `toml:"message"`
		Files   []string `toml:"files"`
	}

	// BatchOption configures RunBatch.
	BatchOption func(*batchOptions)

	batchOptions struct {
		logger *log.Logger
	}

	summaryDoc struct {
		Total     int            `toml:"total"`
		Succeeded []string       `toml:"succeeded"`
		Failures  []FailureGroup `toml:"failures"`
	}
)

// WithLogger reports per-file progress to logger.
func WithLogger(logger *log.Logger) BatchOption {
	return func(o *batchOptions) { o.logger = logger }
}

// RunBatch calls fn for every path in order. A failing or panicking file is
// recorded in the summary and the run moves on to the next file. Once ctx is
// done the remaining files are recorded as failed with ctx's error.
func RunBatch(ctx context.Context, paths []string, fn FileFunc, opts ...BatchOption) *Summary {
	var o batchOptions
	for _, opt := range opts {
		opt(&o)
	}

	s := &Summary{failures: make(map[string][]string)}
	for i, path := range paths {
		err := ctx.Err()
		if err == nil {
			err = runIsolated(ctx, path, fn)
		}
		if err != nil {
			s.fail(path, err)
			if o.logger != nil {
				o.logger.Error("failed", "file", path, "progress", fmt.Sprintf("%d/%d", i+1, len(paths)), "err", err)
			}
			continue
		}
		s.Succeeded = append(s.Succeeded, path)
		if o.logger != nil {
			o.logger.Info("done", "file", path, "progress", fmt.Sprintf("%d/%d", i+1, len(paths)))
		}
	}
	return s
}

// runIsolated calls fn and turns a panic into an error.
func runIsolated(ctx context.Context, path string, fn FileFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx, path)
}

// fail records path under err's message. A leading "path: " is removed
// from the message so identical failures of different files group together.
func (s *Summary) fail(path string, err error) {
	msg := strings.TrimPrefix(err.Error(), path+": ")
	s.failures[msg] = append(s.failures[msg], path)
}

// Total returns the number of files processed.
func (s *Summary) Total() int { return len(s.Succeeded) + s.Failed() }

// Failed returns the number of files that failed.
func (s *Summary) Failed() int {
	n := 0
	for _, files := range s.failures {
		n += len(files)
	}
	return n
}

// Failures returns the failures grouped by message, sorted by message, each
// with its files sorted.
func (s *Summary) Failures() []FailureGroup {
	msgs := slices.Sorted(maps.Keys(s.failures))
	groups := make([]FailureGroup, len(msgs))
	for i, msg := range msgs {
		groups[i] = FailureGroup{Message: msg, Files: slices.Sorted(slices.Values(s.failures[msg]))}
	}
	return groups
}

// WriteText writes the summary as plain text.
func (s *Summary) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%d files, %d succeeded, %d failed\n", s.Total(), len(s.Succeeded), s.Failed())
	for _, g := range s.Failures() {
		fmt.Fprintf(&b, "\n%s (%d files)\n", g.Message, len(g.Files))
		for _, f := range g.Files {
			fmt.Fprintf(&b, "\t%s\n", f)
		}
	}
	if len(s.Succeeded) > 0 {
		b.WriteString("\nsucceeded:\n")
		for _, f := range slices.Sorted(slices.Values(s.Succeeded)) {
			fmt.Fprintf(&b, "\t%s\n", f)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteTOML writes the summary as a TOML document.
func (s *Summary) WriteTOML(w io.Writer) error {
	doc := summaryDoc{
		Total:     s.Total(),
		Succeeded: slices.Sorted(slices.Values(s.Succeeded)),
		Failures:  s.Failures(),
	}
	if doc.Succeeded == nil {
		doc.Succeeded = []string{}
	}
	return toml.NewEncoder(w).Encode(doc)
}

// WriteFile writes the summary to path, as TOML when path ends in .toml and
// as text otherwise.
func (s *Summary) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return s.WriteTOML(f)
	}
	return s.WriteText(f)
}
