// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Storage keys. These mirror the keys the collections have always been
// persisted under, so an export of the old local state drops straight in.
const (
	keySales        = "shop_entries"
	keyIceDebt      = "ice_debt_entries"
	keyCustomerDebt = "customer_debt_entries"
	keySinkURL      = "shoptrack_url"
)

// Store is the durable local ledger store: a single-writer SQLite database
// holding one JSON blob per collection plus the settings keys. Reads that
// hit missing or unparsable blobs degrade to empty collections; local
// storage is a best-effort cache, not a source of truth requiring integrity
// guarantees.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	mu     sync.Mutex // serialize write cycles to avoid SQLite locking issues
}

// Open opens (and if needed creates) the store at path. Pass ":memory:" for
// an ephemeral store.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger store: %w", err)
	}
	// Single connection: the store is a single-writer cache and a pooled
	// ":memory:" DSN would otherwise hand each connection its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv_blob (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Load reads all three collections. A missing or corrupt blob yields an
// empty collection for that kind only; the other kinds still load. Only a
// database-level failure is returned as an error.
func (s *Store) Load() (sales []SaleEntry, chain []IceDebtAdjustment, debts []CustomerDebtEntry, err error) {
	if err = loadCollection(s, keySales, &sales); err != nil {
		return nil, nil, nil, err
	}
	if err = loadCollection(s, keyIceDebt, &chain); err != nil {
		return nil, nil, nil, err
	}
	if err = loadCollection(s, keyCustomerDebt, &debts); err != nil {
		return nil, nil, nil, err
	}
	return sales, chain, debts, nil
}

// Save persists all three collections in one transaction, so a reader never
// observes one collection updated without the others.
func (s *Store) Save(sales []SaleEntry, chain []IceDebtAdjustment, debts []CustomerDebtEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	for _, kv := range []struct {
		key   string
		value any
	}{
		{keySales, emptyIfNil(sales)},
		{keyIceDebt, emptyIfNil(chain)},
		{keyCustomerDebt, emptyIfNil(debts)},
	} {
		blob, err := json.Marshal(kv.value)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", kv.key, err)
		}
		if _, err := tx.Exec(`
			INSERT INTO kv_blob (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, kv.key, string(blob)); err != nil {
			return fmt.Errorf("failed to persist %s: %w", kv.key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	return nil
}

// AppendSale appends the entry and persists all collections.
func (s *Store) AppendSale(entry SaleEntry) error {
	sales, chain, debts, err := s.Load()
	if err != nil {
		return err
	}
	return s.Save(AppendSale(sales, entry), chain, debts)
}

// AppendIceAdjustment appends the adjustment and persists all collections.
func (s *Store) AppendIceAdjustment(adj IceDebtAdjustment) error {
	sales, chain, debts, err := s.Load()
	if err != nil {
		return err
	}
	return s.Save(sales, AppendIceAdjustment(chain, adj), debts)
}

// AppendCustomerDebt appends the entry and persists all collections.
func (s *Store) AppendCustomerDebt(entry CustomerDebtEntry) error {
	sales, chain, debts, err := s.Load()
	if err != nil {
		return err
	}
	return s.Save(sales, chain, AppendCustomerDebt(debts, entry))
}

// RemoveCustomerDebt removes the entry carrying id and persists. Unknown ids
// are a no-op.
func (s *Store) RemoveCustomerDebt(id string) error {
	sales, chain, debts, err := s.Load()
	if err != nil {
		return err
	}
	return s.Save(sales, chain, RemoveCustomerDebt(debts, id))
}

func loadCollection[T any](s *Store, key string, out *[]T) error {
	var blob string
	err := s.db.QueryRow(`SELECT value FROM kv_blob WHERE key = ?`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		*out = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(blob), out); err != nil {
		// Corrupt blob: start fresh for this kind rather than crashing.
		s.logger.Warn("discarding unparsable persisted collection", "key", key, "error", err)
		*out = nil
	}
	return nil
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
