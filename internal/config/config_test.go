// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotEmpty(t, cfg.DBPath)
	require.Equal(t, ":8090", cfg.Serve.Addr)
	require.Empty(t, cfg.SinkURL)
	require.Empty(t, cfg.Serve.DatabaseURL)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Equal(t, Default().Serve.Addr, cfg.Serve.Addr)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path = "/data/ledger.db"
sink_url = "https://script.google.com/macros/s/abc/exec"

[serve]
addr = ":9000"
database_url = "postgres://localhost/sink"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/data/ledger.db", cfg.DBPath)
	require.Equal(t, "https://script.google.com/macros/s/abc/exec", cfg.SinkURL)
	require.Equal(t, ":9000", cfg.Serve.Addr)
	require.Equal(t, "postgres://localhost/sink", cfg.Serve.DatabaseURL)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`db_path = [broken`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`db_path = "/from/file.db"`), 0o644))

	t.Setenv("STOCKJARE_DB", "/from/env.db")
	t.Setenv("STOCKJARE_SINK_URL", "https://env.example/exec")
	t.Setenv("STOCKJARE_ADDR", ":7777")
	t.Setenv("DATABASE_URL", "postgres://env/sink")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/from/env.db", cfg.DBPath)
	require.Equal(t, "https://env.example/exec", cfg.SinkURL)
	require.Equal(t, ":7777", cfg.Serve.Addr)
	require.Equal(t, "postgres://env/sink", cfg.Serve.DatabaseURL)
}
