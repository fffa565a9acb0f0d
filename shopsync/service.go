// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package shopsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Pornjaa/stock-jare/ledger"
)

// ErrNoSinkURL reports that no remote endpoint has been configured yet.
var ErrNoSinkURL = errors.New("no sink URL configured")

// Report summarizes one sync cycle for status display.
type Report struct {
	RemoteSeen   bool // a usable remote snapshot was merged
	Sales        int  // pushed sale entries
	IceDebt      int  // pushed ice-debt adjustments
	CustomerDebt int  // pushed customer-debt entries
}

// Service drives full sync cycles against the ledger store. It serializes
// cycles with a mutex: the reconciler itself is safe to call concurrently,
// but two cycles rewriting the store back to back would race on the
// load-then-save.
type Service struct {
	store  *ledger.Store
	rec    *Reconciler
	logger *slog.Logger
	mu     sync.Mutex
}

// NewService creates a sync service over the store. A nil reconciler gets a
// default transport.
func NewService(store *ledger.Store, rec *Reconciler, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if rec == nil {
		rec = NewReconciler(nil, logger)
	}
	return &Service{store: store, rec: rec, logger: logger}
}

// State exposes the underlying reconciler state.
func (s *Service) State() State { return s.rec.State() }

// Refresh pulls the remote snapshot and merges it into the store without
// pushing. Used when a view wants current remote data; a failed pull leaves
// the store untouched.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remoteURL, err := s.sinkURL()
	if err != nil {
		return err
	}

	local, err := s.loadLocal()
	if err != nil {
		return err
	}

	snapshot := s.rec.Pull(ctx, remoteURL)
	if snapshot == nil {
		return nil
	}

	merged := s.rec.MergeSnapshot(snapshot, local)
	return s.store.Save(merged.Sales, merged.IceDebt, merged.CustomerDebt)
}

// SyncCycle runs one full cycle: pull, merge, push the pending subset, and
// on optimistic push success mark exactly the pushed records synced.
//
// The pending set is captured before the push starts; records appended while
// the push is in flight are not in the confirmation set and stay pending for
// the next cycle. ErrNothingToSync is returned when no records were pending.
func (s *Service) SyncCycle(ctx context.Context) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var report Report

	remoteURL, err := s.sinkURL()
	if err != nil {
		return report, err
	}

	local, err := s.loadLocal()
	if err != nil {
		return report, err
	}

	// Pull + merge. A nil snapshot is routine (endpoint unreachable, opaque
	// response); local state stays authoritative.
	if snapshot := s.rec.Pull(ctx, remoteURL); snapshot != nil {
		local = s.rec.MergeSnapshot(snapshot, local)
		if err := s.store.Save(local.Sales, local.IceDebt, local.CustomerDebt); err != nil {
			return report, err
		}
		report.RemoteSeen = true
	}

	payload := Payload{
		Sales:        FilterUnsynced(local.Sales),
		IceDebt:      FilterUnsynced(local.IceDebt),
		CustomerDebt: FilterUnsynced(local.CustomerDebt),
	}
	report.Sales = len(payload.Sales)
	report.IceDebt = len(payload.IceDebt)
	report.CustomerDebt = len(payload.CustomerDebt)

	if err := s.rec.PushUnsynced(ctx, remoteURL, payload); err != nil {
		return report, err
	}

	// Optimistic confirm: the push did not throw, so flip the synced flag on
	// exactly the records that were in the payload. Reload first; entry
	// actions may have appended records while the push was in flight.
	sales, chain, debts, err := s.store.Load()
	if err != nil {
		return report, fmt.Errorf("push succeeded but reload failed: %w", err)
	}
	sales = ConfirmSynced(sales, idSet(payload.Sales))
	chain = ConfirmSynced(chain, idSet(payload.IceDebt))
	debts = ConfirmSynced(debts, idSet(payload.CustomerDebt))
	if err := s.store.Save(sales, chain, debts); err != nil {
		return report, fmt.Errorf("push succeeded but persisting synced flags failed: %w", err)
	}

	return report, nil
}

func (s *Service) sinkURL() (string, error) {
	remoteURL, err := s.store.SinkURL()
	if err != nil {
		return "", err
	}
	if remoteURL == "" {
		return "", ErrNoSinkURL
	}
	return remoteURL, nil
}

func (s *Service) loadLocal() (Snapshot, error) {
	sales, chain, debts, err := s.store.Load()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Sales: sales, IceDebt: chain, CustomerDebt: debts}, nil
}
