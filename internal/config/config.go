// Package config implements TOML-file + environment-variable
// configuration, grounded on the teacher's cli/fileconfig.go (same
// default-path/env-override/TOML-unmarshal shape), retargeted at the
// core's own ambient knobs: vault path override, breach-endpoint URL,
// and log level. Security-relevant parameters (KDF tuning, timeouts,
// session length) are fixed per spec §3/§5 and are never configurable.
package config

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/latchvault/latch-core/internal/pwquality"
)

const (
	// EnvConfigPath overrides the default config file location.
	EnvConfigPath = "LATCH_CONFIG_PATH"

	// EnvOAuthSecret names the required application pepper for the oauth
	// auth method (spec §6). Must be at least 32 bytes.
	EnvOAuthSecret = "LATCH_OAUTH_SECRET"

	// EnvVaultPath overrides the on-disk vault location.
	EnvVaultPath = "LATCH_VAULT_PATH"

	// EnvBreachEndpoint overrides the k-anonymity breach lookup endpoint.
	EnvBreachEndpoint = "LATCH_BREACH_ENDPOINT"

	defaultConfigName   = ".latch.toml"
	minOAuthSecretBytes = 32
)

// FileConfig is the full structure of the TOML configuration file.
type FileConfig struct {
	Vault VaultConfig `toml:"vault" comment:"Vault storage and breach-check configuration"`
	Log   LogConfig   `toml:"log" comment:"Logging configuration"`

	path string
}

// VaultConfig holds vault-related configuration.
type VaultConfig struct {
	Path           string `toml:"path,commented" comment:"Vault file path override (default: OS-specific location)"`
	BreachEndpoint string `toml:"breach_endpoint,commented" comment:"Override for the k-anonymity breach-check endpoint"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `toml:"level,commented" comment:"Log level: debug, info, warn, error (default: info)"`
}

// ConfigError reports a specific invalid configuration option.
type ConfigError struct {
	Opt string
	Err error
}

func (e *ConfigError) Error() string {
	return "config: " + strings.Join([]string{e.Opt, e.Err.Error()}, ": ")
}

func (e *ConfigError) Unwrap() error { return e.Err }

func newFileConfig() *FileConfig {
	return &FileConfig{}
}

// Load loads the config from path, or the default location if path is
// empty, falling back to an empty config if no file exists there.
// Environment variables always take precedence over file values (see
// Resolved).
func Load(path string) (*FileConfig, error) {
	defaultPath, err := defaultConfigPath()
	if err != nil {
		return nil, err
	}

	configPath := cmp.Or(path, defaultPath)

	c, err := parseFileConfig(configPath)
	if err != nil {
		if len(path) == 0 && errors.Is(err, fs.ErrNotExist) {
			c = newFileConfig()
		} else {
			return nil, err
		}
	} else {
		c.path = configPath
	}

	return c, nil
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: user home dir: %w", err)
	}

	path := filepath.Join(home, defaultConfigName)
	if p, ok := os.LookupEnv(EnvConfigPath); ok {
		path = p
	}

	return path, nil
}

func parseFileConfig(path string) (*FileConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: stat file: %w", err)
	}

	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	c := newFileConfig()
	if err := toml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("config: parse file: %w", err)
	}

	return c, nil
}

// Resolved is the fully-resolved runtime configuration: file values
// overridden by environment variables, ready for the engine/command
// layer to consume.
type Resolved struct {
	VaultPath      string // empty means "use vaultfile.DefaultPath()"
	BreachEndpoint string // empty means pwquality.DefaultBreachEndpoint
	LogLevel       string
	OAuthPepper    []byte // nil if LATCH_OAUTH_SECRET is unset
}

// Resolve merges c with environment overrides into a Resolved config.
func (c *FileConfig) Resolve() Resolved {
	r := Resolved{
		VaultPath:      c.Vault.Path,
		BreachEndpoint: c.Vault.BreachEndpoint,
		LogLevel:       cmp.Or(c.Log.Level, "info"),
	}

	if v, ok := os.LookupEnv(EnvVaultPath); ok {
		r.VaultPath = v
	}

	if v, ok := os.LookupEnv(EnvBreachEndpoint); ok {
		r.BreachEndpoint = v
	}

	if v, ok := os.LookupEnv(EnvOAuthSecret); ok {
		r.OAuthPepper = []byte(v)
	}

	if r.BreachEndpoint == "" {
		r.BreachEndpoint = pwquality.DefaultBreachEndpoint
	}

	return r
}

// RequireOAuthPepper returns the configured OAuth pepper, or an error if
// it is missing or shorter than 32 bytes. Spec §6: startup MUST refuse to
// perform OAuth operations in that case.
func (r Resolved) RequireOAuthPepper() ([]byte, error) {
	if len(r.OAuthPepper) < minOAuthSecretBytes {
		return nil, &ConfigError{
			Opt: "LATCH_OAUTH_SECRET",
			Err: fmt.Errorf("must be set and at least %d bytes", minOAuthSecretBytes),
		}
	}

	return r.OAuthPepper, nil
}
