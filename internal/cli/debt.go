// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pornjaa/stock-jare/ledger"
)

func init() {
	rootCmd.AddCommand(debtCmd)
	debtCmd.AddCommand(debtAddCmd)
	debtCmd.AddCommand(debtRemoveCmd)
	debtCmd.AddCommand(debtListCmd)

	debtAddCmd.Flags().StringP("customer", "c", "", "customer name")
	debtAddCmd.Flags().StringP("item", "i", "", "item owed")
	debtAddCmd.Flags().Float64P("quantity", "q", 0, "quantity")
	debtAddCmd.Flags().Float64P("amount", "a", 0, "amount owed")
	debtAddCmd.MarkFlagRequired("customer")
	debtAddCmd.MarkFlagRequired("item")
}

var debtCmd = &cobra.Command{
	Use:   "debt",
	Short: "Track per-customer outstanding debts",
}

var debtAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a customer debt",
	RunE: func(cmd *cobra.Command, args []string) error {
		customer, _ := cmd.Flags().GetString("customer")
		item, _ := cmd.Flags().GetString("item")
		quantity, _ := cmd.Flags().GetFloat64("quantity")
		amount, _ := cmd.Flags().GetFloat64("amount")

		entry, err := ledger.NewCustomerDebtEntry(customer, item, quantity, amount)
		if err != nil {
			return err
		}

		store, _, err := openStore(newLogger())
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.AppendCustomerDebt(entry); err != nil {
			return err
		}
		fmt.Printf("recorded debt %s: %s owes %s (%.2f)\n", entry.ID, entry.CustomerName, entry.ItemName, entry.Amount)
		return nil
	},
}

var debtRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove a settled customer debt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore(newLogger())
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.RemoveCustomerDebt(args[0]); err != nil {
			return err
		}
		fmt.Printf("removed %s (if present)\n", args[0])
		return nil
	},
}

var debtListCmd = &cobra.Command{
	Use:   "list",
	Short: "List outstanding customer debts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore(newLogger())
		if err != nil {
			return err
		}
		defer store.Close()

		_, _, debts, err := store.Load()
		if err != nil {
			return err
		}
		if len(debts) == 0 {
			fmt.Println("no outstanding debts")
			return nil
		}
		for _, d := range debts {
			synced := " "
			if d.Synced {
				synced = "*"
			}
			fmt.Printf("%s %s  %-20s %-20s x%-6g %.2f\n", synced, d.ID, d.CustomerName, d.ItemName, d.Quantity, d.Amount)
		}
		return nil
	},
}
