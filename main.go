// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "github.com/Pornjaa/stock-jare/internal/cli"

func main() {
	cli.Execute()
}
