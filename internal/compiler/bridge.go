// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"time"
)

type (
	// Bridge compiles by running an external helper process that loads the
	// native compiler library.
	Bridge struct {
		path    string
		library string
		args    []string
		env     []string
		timeout time.Duration
	}

	// BridgeOption configures a Bridge.
	BridgeOption func(*Bridge)
)

// NewBridge returns a Bridge running the helper at path against the native
// library at library.
func NewBridge(path, library string, opts ...BridgeOption) *Bridge {
	b := &Bridge{path: path, library: library}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// WithTimeout bounds each compilation. Zero means no limit beyond the
// caller's context.
func WithTimeout(d time.Duration) BridgeOption {
	return func(b *Bridge) { b.timeout = d }
}

// WithArgs adds arguments placed before the bridge's own flags.
func WithArgs(args ...string) BridgeOption {
	return func(b *Bridge) { b.args = append(b.args, args...) }
}

// WithEnv adds KEY=VALUE entries to the helper's environment.
func WithEnv(env ...string) BridgeOption {
	return func(b *Bridge) { b.env = append(b.env, env...) }
}

// Path returns the helper executable.
func (b *Bridge) Path() string { return b.path }

// Library returns the native library path passed to the helper.
func (b *Bridge) Library() string { return b.library }

// Compile implements Compiler.
func (b *Bridge) Compile(ctx context.Context, bytecode []byte, target Target) (string, error) {
	if b.path == "" {
		return "", ErrBridgeNotConfigured
	}
	target = target.OrDefault()

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	args := append([]string(nil), b.args...)
	args = append(args, "--library", b.library, "--target", string(target))
	cmd := exec.CommandContext(ctx, b.path, args...)
	cmd.Env = append(os.Environ(), b.env...)
	cmd.Stdin = bytes.NewReader(bytecode)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running compiler bridge", "path", b.path, "target", target, "bytes", len(bytecode))
	err := cmd.Run()
	if err != nil {
		ce := &CompileError{Target: target, ExitCode: -1, Stderr: stderr.String(), Reason: err.Error()}
		var exitErr *exec.ExitError
		switch {
		case ctx.Err() != nil:
			ce.Reason = "compiler bridge stopped: " + ctx.Err().Error()
		case errors.As(err, &exitErr):
			ce.ExitCode = exitErr.ExitCode()
			ce.Reason = "compiler bridge exited with an error"
			if ce.ExitCode < 0 {
				ce.Reason = "compiler bridge terminated: " + exitErr.String()
			}
		}
		return "", ce
	}

	if stdout.Len() == 0 {
		return "", &CompileError{Target: target, Stderr: stderr.String(), Reason: "compiler bridge produced no output"}
	}
	return stdout.String(), nil
}
