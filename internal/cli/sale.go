// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Pornjaa/stock-jare/ledger"
)

func init() {
	rootCmd.AddCommand(saleCmd)
	saleCmd.AddCommand(saleAddCmd)
	saleCmd.AddCommand(saleCategoriesCmd)

	saleAddCmd.Flags().StringP("category", "c", "", "product category (see 'sale categories')")
	saleAddCmd.Flags().StringP("product", "p", "", "product name")
	saleAddCmd.Flags().Float64P("quantity", "q", 0, "quantity sold (must be > 0)")
	saleAddCmd.Flags().Float64P("total", "t", 0, "total price")
	saleAddCmd.MarkFlagRequired("category")
	saleAddCmd.MarkFlagRequired("product")
	saleAddCmd.MarkFlagRequired("quantity")
}

var saleCmd = &cobra.Command{
	Use:   "sale",
	Short: "Log product sales",
}

var saleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record one sale",
	RunE:  runSaleAdd,
}

var saleCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories and their usual products",
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range ledger.Categories() {
			fmt.Printf("%-13s %s\n", c, strings.Join(ledger.DefaultProducts[c], ", "))
		}
	},
}

func runSaleAdd(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	product, _ := cmd.Flags().GetString("product")
	quantity, _ := cmd.Flags().GetFloat64("quantity")
	total, _ := cmd.Flags().GetFloat64("total")

	entry, err := ledger.NewSaleEntry(ledger.Category(category), product, quantity, total)
	if err != nil {
		return err
	}

	logger := newLogger()
	store, _, err := openStore(logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.AppendSale(entry); err != nil {
		return err
	}
	fmt.Printf("recorded sale %s: %s x%g (%.2f)\n", entry.ID, entry.ProductName, entry.Quantity, entry.TotalPrice)
	return nil
}
