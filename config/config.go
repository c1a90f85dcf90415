// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

// Package config loads builder settings from a YAML or TOML file and the
// environment, and turns them into tx builder options and a logger.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvNetwork     = "TXBUILD_NETWORK"
	EnvNetworkFile = "TXBUILD_NETWORK_FILE"
	EnvFeeRate     = "TXBUILD_FEE_RATE"
	EnvDustLimit   = "TXBUILD_DUST_LIMIT"
	EnvLogLevel    = "TXBUILD_LOG_LEVEL"
	EnvLogFile     = "TXBUILD_LOG_FILE"
)

// Config holds builder settings.
type Config struct {
	// Network pins target addresses to "mainnet", "testnet" or "regtest".
	// Empty accepts any supported network.
	Network string `yaml:"network" toml:"network"`

	// NetworkFile is a JSON network params file. When set it pins the
	// builder to that network and takes precedence over Network.
	NetworkFile string `yaml:"network_file,omitempty" toml:"network_file,omitempty"`

	// FeeRate is in satoshis per 1000 bytes. Zero pays no fee.
	FeeRate uint64 `yaml:"fee_rate" toml:"fee_rate"`

	// DustLimit is the largest change value folded into the fee.
	DustLimit uint64 `yaml:"dust_limit" toml:"dust_limit"`

	// RequireScriptPubKey rejects UTXOs without a script_pub_key instead
	// of assuming they belong to the signing key.
	RequireScriptPubKey bool `yaml:"require_script_pub_key" toml:"require_script_pub_key"`

	LogLevel string `yaml:"log_level" toml:"log_level"`
	LogFile  string `yaml:"log_file,omitempty" toml:"log_file,omitempty"` // empty logs to stderr
}

// DefaultConfig returns the settings CreateTransaction uses.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
	}
}

// DefaultDataDir returns ~/.txbuild, or .txbuild when the home directory
// is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".txbuild"
	}
	return filepath.Join(home, ".txbuild")
}

// ConfigPath returns the config file path inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config.yaml")
}

// LoadConfig reads a config file over DefaultConfig. Files ending in
// ".toml" are TOML, everything else is YAML. Keys absent from the file keep
// their defaults; unknown keys are ignored.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if isTOML(path) {
		_, err = toml.Decode(string(data), &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any TXBUILD_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvNetwork); v != "" {
		cfg.Network = v
	}
	if v := os.Getenv(EnvNetworkFile); v != "" {
		cfg.NetworkFile = v
	}
	if v := os.Getenv(EnvFeeRate); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnv, EnvFeeRate, v)
		}
		cfg.FeeRate = n
	}
	if v := os.Getenv(EnvDustLimit); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnv, EnvDustLimit, v)
		}
		cfg.DustLimit = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	return nil
}

// SaveConfig writes cfg to path in the format its extension selects,
// creating parent directories.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	buf := bytes.NewBufferString("# txbuild configuration\n")
	if isTOML(path) {
		if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
			return fmt.Errorf("config: encode: %w", err)
		}
	} else {
		data, err := yaml.Marshal(&cfg)
		if err != nil {
			return fmt.Errorf("config: encode: %w", err)
		}
		buf.Write(data)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
