// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package sheetsink

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// initializeSchemaInTx creates the three row tables. Each table keys on the
// client-generated record id (the idempotency key) and carries a seq column
// so snapshots can be served in insertion order.
func initializeSchemaInTx(ctx context.Context, tx pgx.Tx) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS sink_sales (
			id           TEXT PRIMARY KEY,
			seq          BIGINT GENERATED ALWAYS AS IDENTITY,
			ts           TEXT NOT NULL,
			category     TEXT NOT NULL,
			product_name TEXT NOT NULL,
			quantity     DOUBLE PRECISION NOT NULL,
			total_price  DOUBLE PRECISION NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sink_ice_debt (
			id            TEXT PRIMARY KEY,
			seq           BIGINT GENERATED ALWAYS AS IDENTITY,
			ts            TEXT NOT NULL,
			previous_debt DOUBLE PRECISION NOT NULL,
			delivered     DOUBLE PRECISION NOT NULL,
			collected     DOUBLE PRECISION NOT NULL,
			current_debt  DOUBLE PRECISION NOT NULL,
			note          TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS sink_customer_debt (
			id            TEXT PRIMARY KEY,
			seq           BIGINT GENERATED ALWAYS AS IDENTITY,
			ts            TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			item_name     TEXT NOT NULL,
			quantity      DOUBLE PRECISION NOT NULL,
			amount        DOUBLE PRECISION NOT NULL
		)`,
	}

	for _, stmt := range ddl {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create sink table: %w", err)
		}
	}
	return nil
}
