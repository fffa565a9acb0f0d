// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pornjaa/stock-jare/ledger"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show sales totals, category breakdown, and daily trend",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore(newLogger())
		if err != nil {
			return err
		}
		defer store.Close()

		sales, _, _, err := store.Load()
		if err != nil {
			return err
		}

		s := ledger.Summarize(sales)
		fmt.Printf("total: %.2f across %g units (%d entries)\n\n", s.TotalAmount, s.TotalQuantity, len(sales))

		if len(s.Categories) > 0 {
			fmt.Println("by category:")
			for _, ct := range s.Categories {
				fmt.Printf("  %-13s %10.2f  x%g\n", ct.Category, ct.Amount, ct.Quantity)
			}
			fmt.Println()
		}

		if len(s.Daily) > 0 {
			fmt.Println("daily revenue:")
			for _, d := range s.Daily {
				fmt.Printf("  %s  %10.2f\n", d.Date, d.Amount)
			}
		}
		return nil
	},
}
