// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Pornjaa/stock-jare/sheetsink"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
	serveCmd.Flags().String("database-url", "", "Postgres URL (overrides config; empty runs in-memory)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reference sheet sink server",
	Long: `Serves the remote sink contract locally: POST / appends pushed records
(deduplicated by id), GET / returns the full snapshot. Backed by Postgres
when a database URL is configured, otherwise by an in-memory store that
forgets everything on exit.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.Serve.Addr = v
	}
	if v, _ := cmd.Flags().GetString("database-url"); v != "" {
		cfg.Serve.DatabaseURL = v
	}

	var store sheetsink.RowStore
	if cfg.Serve.DatabaseURL != "" {
		pg, err := sheetsink.NewPGStore(cmd.Context(), cfg.Serve.DatabaseURL, logger)
		if err != nil {
			return err
		}
		defer pg.Close()
		store = pg
		logger.Info("sink storage: postgres")
	} else {
		store = sheetsink.NewMemStore()
		logger.Warn("sink storage: in-memory, rows are lost on exit")
	}

	handlers := sheetsink.NewHandlers(store, nil, logger)
	httpServer := &http.Server{
		Addr:         cfg.Serve.Addr,
		Handler:      handlers.Router(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("sheet sink listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("sink server failed: %w", err)
	case <-quit:
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}
