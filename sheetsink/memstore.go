// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package sheetsink

import (
	"context"
	"sync"

	"github.com/Pornjaa/stock-jare/ledger"
	"github.com/Pornjaa/stock-jare/shopsync"
)

// MemStore is an in-memory RowStore used in tests and for running the sink
// without Postgres. Semantics match PGStore: dedup by id, snapshot
// most-recent-first.
type MemStore struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	sales []ledger.SaleEntry
	ice   []ledger.IceDebtAdjustment
	debts []ledger.CustomerDebtEntry
}

// NewMemStore creates an empty in-memory sink store.
func NewMemStore() *MemStore {
	return &MemStore{seen: make(map[string]struct{})}
}

// AppendRows appends the payload's records, skipping ids already held.
func (s *MemStore) AppendRows(_ context.Context, payload shopsync.Payload) (AppendCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var counts AppendCounts
	for _, e := range payload.Sales {
		if s.insert(e.ID) {
			s.sales = append(s.sales, e)
			counts.Sales++
		}
	}
	for _, e := range payload.IceDebt {
		if s.insert(e.ID) {
			s.ice = append(s.ice, e)
			counts.IceDebt++
		}
	}
	for _, e := range payload.CustomerDebt {
		if s.insert(e.ID) {
			s.debts = append(s.debts, e)
			counts.CustomerDebt++
		}
	}
	return counts, nil
}

// Snapshot returns all held rows, most-recent-first per kind.
func (s *MemStore) Snapshot(_ context.Context) (shopsync.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return shopsync.Snapshot{
		Sales:        reversed(s.sales),
		IceDebt:      reversed(s.ice),
		CustomerDebt: reversed(s.debts),
	}, nil
}

func (s *MemStore) insert(id string) bool {
	if _, dup := s.seen[id]; dup {
		return false
	}
	s.seen[id] = struct{}{}
	return true
}

func reversed[T any](in []T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
