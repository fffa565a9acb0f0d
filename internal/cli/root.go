// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the stockjare command line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Pornjaa/stock-jare/internal/config"
	"github.com/Pornjaa/stock-jare/ledger"
)

var (
	flagConfig  string
	flagDB      string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "stockjare",
	Short: "Point-of-sale ledger with spreadsheet sync",
	Long: `stockjare logs product sales, the running ice bag debt, and per-customer
outstanding debts in a local ledger, and pushes unsynced records to a
spreadsheet-backed sink on demand. All state lives in a local SQLite file;
sync is one-way and safe to retry.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "ledger database path (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	return cfg, nil
}

// openStore opens the ledger store, creating its directory if needed, and
// seeds the sink URL from the config file when the store has none yet.
func openStore(logger *slog.Logger) (*ledger.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	store, err := ledger.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.SinkURL != "" {
		current, err := store.SinkURL()
		if err == nil && current == "" {
			if err := store.SetSinkURL(cfg.SinkURL); err != nil {
				logger.Warn("config sink_url rejected", "error", err)
			}
		}
	}

	return store, cfg, nil
}
