// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the stockjare TOML configuration file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full configuration surface of the stockjare binary.
//
// The sink URL set in the ledger store (via `stockjare config set-url`)
// takes precedence over SinkURL here; the file value is a bootstrap default
// only.
type Config struct {
	DBPath  string `toml:"db_path"`  // ledger store location
	SinkURL string `toml:"sink_url"` // default remote endpoint
	Serve   Serve  `toml:"serve"`
}

// Serve configures the reference sheet sink server.
type Serve struct {
	Addr        string `toml:"addr"`
	DatabaseURL string `toml:"database_url"` // Postgres; empty runs in-memory
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		DBPath: defaultDBPath(),
		Serve: Serve{
			Addr: ":8090",
		},
	}
}

// Load reads the config file at path, falling back to defaults when path is
// empty or the file does not exist, then applies environment overrides
// (STOCKJARE_DB, STOCKJARE_SINK_URL, STOCKJARE_ADDR, DATABASE_URL).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("STOCKJARE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("STOCKJARE_SINK_URL"); v != "" {
		cfg.SinkURL = v
	}
	if v := os.Getenv("STOCKJARE_ADDR"); v != "" {
		cfg.Serve.Addr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Serve.DatabaseURL = v
	}

	return cfg, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "stockjare.toml"
	}
	return filepath.Join(dir, "stockjare", "config.toml")
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "stockjare.db"
	}
	return filepath.Join(dir, "stockjare", "ledger.db")
}
