// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/fxodeps/fxodeps/internal/compiler"
	"github.com/fxodeps/fxodeps/internal/config"

	"github.com/spf13/cobra"
)

// compilerFlags are the per-command overrides of the compiler.* config keys.
type compilerFlags struct {
	bridge  string
	library string
	target  string
}

func (f *compilerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.bridge, "bridge", "", "compiler bridge executable (overrides compiler.bridge)")
	cmd.Flags().StringVar(&f.library, "library", "", "vendor compiler library (overrides compiler.library)")
	cmd.Flags().StringVar(&f.target, "target", "", "device family to compile for (overrides compiler.target)")
}

// apply returns cc with every set flag applied.
func (f compilerFlags) apply(cc config.CompilerConfig) config.CompilerConfig {
	if f.bridge != "" {
		cc.Bridge = config.FilePath(f.bridge)
	}
	if f.library != "" {
		cc.Library = config.FilePath(f.library)
	}
	if f.target != "" {
		cc.Target = compiler.Target(f.target)
	}
	return cc
}

// validate rejects a malformed --target before any file is read.
func (f compilerFlags) validate() error {
	if f.target == "" {
		return nil
	}
	if ok, errs := compiler.Target(f.target).IsValid(); !ok {
		return errs[0]
	}
	return nil
}
