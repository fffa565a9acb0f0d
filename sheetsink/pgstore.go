// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package sheetsink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pornjaa/stock-jare/ledger"
	"github.com/Pornjaa/stock-jare/shopsync"
)

// PGStore is the Postgres-backed RowStore.
type PGStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPGStore connects to databaseURL and initializes the sink schema.
func NewPGStore(ctx context.Context, databaseURL string, logger *slog.Logger) (*PGStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		return initializeSchemaInTx(ctx, tx)
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize sink schema: %w", err)
	}

	return &PGStore{pool: pool, logger: logger}, nil
}

// Close releases the connection pool.
func (s *PGStore) Close() { s.pool.Close() }

// AppendRows inserts all records of the payload in one transaction, kind by
// kind. Rows whose id already exists are skipped, which makes client retries
// after ambiguous push outcomes idempotent.
func (s *PGStore) AppendRows(ctx context.Context, payload shopsync.Payload) (AppendCounts, error) {
	var counts AppendCounts

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for _, e := range payload.Sales {
			tag, err := tx.Exec(ctx, `
				INSERT INTO sink_sales (id, ts, category, product_name, quantity, total_price)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (id) DO NOTHING
			`, e.ID, e.Timestamp, string(e.Category), e.ProductName, e.Quantity, e.TotalPrice)
			if err != nil {
				return fmt.Errorf("failed to append sale %s: %w", e.ID, err)
			}
			counts.Sales += int(tag.RowsAffected())
		}

		for _, e := range payload.IceDebt {
			tag, err := tx.Exec(ctx, `
				INSERT INTO sink_ice_debt (id, ts, previous_debt, delivered, collected, current_debt, note)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (id) DO NOTHING
			`, e.ID, e.Timestamp, e.PreviousDebt, e.Delivered, e.Collected, e.CurrentDebt, e.Note)
			if err != nil {
				return fmt.Errorf("failed to append ice adjustment %s: %w", e.ID, err)
			}
			counts.IceDebt += int(tag.RowsAffected())
		}

		for _, e := range payload.CustomerDebt {
			tag, err := tx.Exec(ctx, `
				INSERT INTO sink_customer_debt (id, ts, customer_name, item_name, quantity, amount)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (id) DO NOTHING
			`, e.ID, e.Timestamp, e.CustomerName, e.ItemName, e.Quantity, e.Amount)
			if err != nil {
				return fmt.Errorf("failed to append customer debt %s: %w", e.ID, err)
			}
			counts.CustomerDebt += int(tag.RowsAffected())
		}

		return nil
	})
	if err != nil {
		return AppendCounts{}, err
	}
	return counts, nil
}

// Snapshot returns every row the sink holds, most-recent-first per kind.
func (s *PGStore) Snapshot(ctx context.Context) (shopsync.Snapshot, error) {
	var snapshot shopsync.Snapshot

	rows, err := s.pool.Query(ctx, `
		SELECT id, ts, category, product_name, quantity, total_price
		FROM sink_sales ORDER BY seq DESC
	`)
	if err != nil {
		return snapshot, fmt.Errorf("failed to query sales: %w", err)
	}
	for rows.Next() {
		var e ledger.SaleEntry
		var category string
		if err := rows.Scan(&e.ID, &e.Timestamp, &category, &e.ProductName, &e.Quantity, &e.TotalPrice); err != nil {
			rows.Close()
			return snapshot, fmt.Errorf("failed to scan sale row: %w", err)
		}
		e.Category = ledger.Category(category)
		snapshot.Sales = append(snapshot.Sales, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snapshot, fmt.Errorf("error iterating sales: %w", err)
	}

	rows, err = s.pool.Query(ctx, `
		SELECT id, ts, previous_debt, delivered, collected, current_debt, note
		FROM sink_ice_debt ORDER BY seq DESC
	`)
	if err != nil {
		return snapshot, fmt.Errorf("failed to query ice debt: %w", err)
	}
	for rows.Next() {
		var e ledger.IceDebtAdjustment
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.PreviousDebt, &e.Delivered, &e.Collected, &e.CurrentDebt, &e.Note); err != nil {
			rows.Close()
			return snapshot, fmt.Errorf("failed to scan ice debt row: %w", err)
		}
		snapshot.IceDebt = append(snapshot.IceDebt, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snapshot, fmt.Errorf("error iterating ice debt: %w", err)
	}

	rows, err = s.pool.Query(ctx, `
		SELECT id, ts, customer_name, item_name, quantity, amount
		FROM sink_customer_debt ORDER BY seq DESC
	`)
	if err != nil {
		return snapshot, fmt.Errorf("failed to query customer debt: %w", err)
	}
	for rows.Next() {
		var e ledger.CustomerDebtEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.CustomerName, &e.ItemName, &e.Quantity, &e.Amount); err != nil {
			rows.Close()
			return snapshot, fmt.Errorf("failed to scan customer debt row: %w", err)
		}
		snapshot.CustomerDebt = append(snapshot.CustomerDebt, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snapshot, fmt.Errorf("error iterating customer debt: %w", err)
	}

	return snapshot, nil
}
