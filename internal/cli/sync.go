// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pornjaa/stock-jare/ledger"
	"github.com/Pornjaa/stock-jare/shopsync"
)

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(statusCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push unsynced records to the sheet sink",
	Long: `Runs one full sync cycle: pull the remote snapshot, merge it into the
local ledger (pending local records always win), then push everything still
unsynced. A failed push leaves all records pending; just run sync again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		store, _, err := openStore(logger)
		if err != nil {
			return err
		}
		defer store.Close()

		svc := shopsync.NewService(store, nil, logger)
		report, err := svc.SyncCycle(cmd.Context())
		switch {
		case errors.Is(err, shopsync.ErrNothingToSync):
			fmt.Println("nothing to sync")
			return nil
		case errors.Is(err, shopsync.ErrNoSinkURL):
			return fmt.Errorf("no sink URL configured; run 'stockjare config set-url' first")
		case err != nil:
			return fmt.Errorf("sync failed, records left pending: %w", err)
		}

		fmt.Printf("pushed %d sales, %d ice adjustments, %d customer debts\n",
			report.Sales, report.IceDebt, report.CustomerDebt)
		if !report.RemoteSeen {
			fmt.Println("(no usable remote snapshot; pushed from local state only)")
		}
		return nil
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Refresh the local ledger from the remote snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		store, _, err := openStore(logger)
		if err != nil {
			return err
		}
		defer store.Close()

		svc := shopsync.NewService(store, nil, logger)
		if err := svc.Refresh(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("refreshed")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pending record counts and the configured sink",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore(newLogger())
		if err != nil {
			return err
		}
		defer store.Close()

		sales, chain, debts, err := store.Load()
		if err != nil {
			return err
		}
		url, err := store.SinkURL()
		if err != nil {
			return err
		}

		fmt.Printf("records: %d sales, %d ice adjustments, %d customer debts\n", len(sales), len(chain), len(debts))
		fmt.Printf("pending: %d unsynced\n", ledger.UnsyncedCount(sales, chain, debts))
		fmt.Printf("ice balance: %g bags\n", ledger.CurrentIceDebt(chain))
		if url == "" {
			fmt.Println("sink: not configured")
		} else {
			fmt.Printf("sink: %s\n", url)
		}
		return nil
	},
}
