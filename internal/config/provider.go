// SPDX-License-Identifier: MPL-2.0

package config

import "context"

type (
	// LoadOptions defines explicit configuration loading inputs.
	LoadOptions struct {
		// ConfigFilePath forces loading from a specific config file when set.
		ConfigFilePath string
		// ConfigDirPath overrides the config directory lookup when set.
		ConfigDirPath string
	}

	// Provider loads configuration from explicit options.
	Provider interface {
		// Load returns the configuration, falling back to DefaultConfig
		// values for everything the file leaves unset.
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
		// Path returns the config file Load would read, or "" when only
		// defaults apply.
		Path(opts LoadOptions) (string, error)
	}

	fileProvider struct{}
)

// configDirOverride replaces ConfigDir in tests, where os.UserHomeDir does
// not reliably follow HOME on every platform.
var configDirOverride string

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Path resolves the config file without reading it.
func (p *fileProvider) Path(opts LoadOptions) (string, error) {
	return resolveConfigPath(opts)
}

// SetConfigDirOverride makes ConfigDir return dir until Reset is called.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears test overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
}
