// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetURLCmd)
	configCmd.AddCommand(configGetURLCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage settings",
}

var configSetURLCmd = &cobra.Command{
	Use:   "set-url URL",
	Short: "Set the remote sink endpoint",
	Long: `Sets the spreadsheet web app URL that sync pushes to. The URL must be an
http(s) URL ending in /exec (the shape a deployed web app exposes).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore(newLogger())
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.SetSinkURL(args[0]); err != nil {
			return err
		}
		fmt.Println("sink URL saved")
		return nil
	},
}

var configGetURLCmd = &cobra.Command{
	Use:   "get-url",
	Short: "Print the configured sink endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore(newLogger())
		if err != nil {
			return err
		}
		defer store.Close()

		url, err := store.SinkURL()
		if err != nil {
			return err
		}
		if url == "" {
			fmt.Println("(not configured)")
			return nil
		}
		fmt.Println(url)
		return nil
	},
}
