// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pornjaa/stock-jare/ledger"
)

func init() {
	rootCmd.AddCommand(iceCmd)
	iceCmd.AddCommand(iceAdjustCmd)
	iceCmd.AddCommand(iceBalanceCmd)

	iceAdjustCmd.Flags().Float64P("delivered", "d", 0, "bags delivered (added to debt)")
	iceAdjustCmd.Flags().Float64P("collected", "c", 0, "bags collected (removed from debt)")
	iceAdjustCmd.Flags().StringP("note", "n", "", "optional note")
	iceAdjustCmd.Flags().Float64("previous", 0, "override the carried-forward balance")
}

var iceCmd = &cobra.Command{
	Use:   "ice",
	Short: "Track the ice bag debt ledger",
}

var iceBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the outstanding bag balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		store, _, err := openStore(logger)
		if err != nil {
			return err
		}
		defer store.Close()

		_, chain, _, err := store.Load()
		if err != nil {
			return err
		}
		fmt.Printf("%g bags outstanding\n", ledger.CurrentIceDebt(chain))
		return nil
	},
}

var iceAdjustCmd = &cobra.Command{
	Use:   "adjust",
	Short: "Record a delivery/collection adjustment",
	RunE:  runIceAdjust,
}

func runIceAdjust(cmd *cobra.Command, args []string) error {
	delivered, _ := cmd.Flags().GetFloat64("delivered")
	collected, _ := cmd.Flags().GetFloat64("collected")
	note, _ := cmd.Flags().GetString("note")

	var explicitPrevious *float64
	if cmd.Flags().Changed("previous") {
		v, _ := cmd.Flags().GetFloat64("previous")
		explicitPrevious = &v
	}

	logger := newLogger()
	store, _, err := openStore(logger)
	if err != nil {
		return err
	}
	defer store.Close()

	sales, chain, debts, err := store.Load()
	if err != nil {
		return err
	}

	newChain, head := ledger.RecordAdjustment(chain, delivered, collected, note, explicitPrevious)
	if err := store.Save(sales, newChain, debts); err != nil {
		return err
	}

	fmt.Printf("balance: %g -> %g bags (+%g delivered, -%g collected)\n",
		head.PreviousDebt, head.CurrentDebt, head.Delivered, head.Collected)
	return nil
}
