// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fxodeps/fxodeps/internal/compiler"
	"github.com/fxodeps/fxodeps/internal/config"
	"github.com/fxodeps/fxodeps/internal/testutil"
	"github.com/fxodeps/fxodeps/internal/testutil/gsfxtest"
)

const (
	vertexAMDIL = `il_vs_2_0
dcl_input_generic v0
dcl_output_position o0
dp4_ieee o0.x___, v0, cb0[0]
mov o0._yzw, v0.xyzw
end
`
	fragmentAMDIL = `il_ps_2_0
dcl_output_generic o0
discard_logicalnz v1.x
mov o0, v2
end
`
)

var errProviderFailed = errors.New("config file is unreadable")

type (
	// staticProvider serves a fixed configuration without touching the
	// filesystem.
	staticProvider struct {
		cfg  *config.Config
		path string
		err  error
	}

	cliResult struct {
		stdout string
		stderr string
		err    error
	}
)

func (p *staticProvider) Load(_ context.Context, _ config.LoadOptions) (*config.Config, error) {
	if p.err != nil {
		return nil, p.err
	}
	cfg := *p.cfg
	return &cfg, nil
}

func (p *staticProvider) Path(_ config.LoadOptions) (string, error) {
	return p.path, p.err
}

// fakeCompiler returns canned AMDIL keyed by the program bytes.
func fakeCompiler(cfg config.CompilerConfig) compiler.Compiler {
	programs := map[string]string{"vs": vertexAMDIL, "ps": fragmentAMDIL}
	return compiler.Func(func(_ context.Context, bytecode []byte, target compiler.Target) (string, error) {
		if target != cfg.Target {
			return "", fmt.Errorf("unexpected target %q", target)
		}
		if text, ok := programs[string(bytecode)]; ok {
			return text, nil
		}
		return "", &compiler.CompileError{Target: target, ExitCode: 1, Reason: "unknown program"}
	})
}

// runCLI executes the root command with args against an App built from
// provider and the fake compiler.
func runCLI(t *testing.T, provider config.Provider, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config:      provider,
		NewCompiler: fakeCompiler,
		Stdout:      &stdout,
		Stderr:      &stderr,
	})
	root := NewRootCommand(app)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func defaultProvider() *staticProvider {
	return &staticProvider{cfg: config.DefaultConfig()}
}

func writeEffect(t *testing.T, dir, name string, vs, ps []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	testutil.MustWriteFile(t, path, gsfxtest.NewEffect(gsfxtest.NewDXBC(vs), gsfxtest.NewDXBC(ps)).Bytes)
	return path
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := errors.AsType[*ExitError](err); ok {
		return exitErr.Code
	}
	return -1
}
