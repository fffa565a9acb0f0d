// Copyright 2025 ShopTrack Authors
// SPDX-License-Identifier: Apache-2.0

package shopsync

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
)

// State is the reconciler's position in a sync cycle. A cycle runs
// Idle -> Pulling -> Merging -> Pushing -> Idle, or ends in Failed when the
// push leg errors (pull failures are swallowed, not a failure path).
type State int32

const (
	StateIdle State = iota
	StatePulling
	StateMerging
	StatePushing
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePulling:
		return "pulling"
	case StateMerging:
		return "merging"
	case StatePushing:
		return "pushing"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// ErrNothingToSync reports that a push found no pending records across all
// three kinds. It is distinct from success: no network call was made.
var ErrNothingToSync = errors.New("nothing to sync")

// Reconciler runs the merge and push legs of a sync cycle over collections
// handed to it by the caller. It holds no ledger state of its own, so
// overlapping cycles are safe: every method takes a snapshot in and hands a
// new snapshot out.
type Reconciler struct {
	transport *Transport
	logger    *slog.Logger
	state     atomic.Int32
}

// NewReconciler creates a reconciler over the given transport.
func NewReconciler(transport *Transport, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	if transport == nil {
		transport = NewTransport(logger)
	}
	return &Reconciler{transport: transport, logger: logger}
}

// State returns the reconciler's current cycle position, for status display.
func (r *Reconciler) State() State { return State(r.state.Load()) }

func (r *Reconciler) setState(s State) { r.state.Store(int32(s)) }

// Pull fetches the remote snapshot; nil means no usable remote data.
func (r *Reconciler) Pull(ctx context.Context, remoteURL string) *Snapshot {
	r.setState(StatePulling)
	defer r.setState(StateIdle)
	return r.transport.FetchRemoteSnapshot(ctx, remoteURL)
}

// MergeSnapshot merges the remote snapshot into the local collections, kind
// by kind, under local-unsynced-precedence. A nil snapshot leaves the local
// state untouched.
func (r *Reconciler) MergeSnapshot(snapshot *Snapshot, local Snapshot) Snapshot {
	if snapshot == nil {
		return local
	}
	r.setState(StateMerging)
	defer r.setState(StateIdle)
	return Snapshot{
		Sales:        Merge(local.Sales, snapshot.Sales),
		IceDebt:      Merge(local.IceDebt, snapshot.IceDebt),
		CustomerDebt: Merge(local.CustomerDebt, snapshot.CustomerDebt),
	}
}

// PushUnsynced sends the pending subsets in one combined payload. When all
// three are empty it returns ErrNothingToSync without touching the network.
// A transport error moves the reconciler to Failed and is surfaced to the
// user; anything else is optimistic success.
func (r *Reconciler) PushUnsynced(ctx context.Context, remoteURL string, payload Payload) error {
	if payload.Empty() {
		return ErrNothingToSync
	}

	r.setState(StatePushing)
	if err := r.transport.Push(ctx, remoteURL, payload); err != nil {
		r.setState(StateFailed)
		return err
	}
	r.setState(StateIdle)
	r.logger.Info("pushed pending records",
		"sales", len(payload.Sales),
		"ice_debt", len(payload.IceDebt),
		"customer_debt", len(payload.CustomerDebt))
	return nil
}
